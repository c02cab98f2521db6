package repository

import (
	"context"
	"errors"
	"fmt"

	"activity-signup/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ActivityRepo реализует репозиторий кружков на базе PostgreSQL.
type ActivityRepo struct {
	db *Postgres
}

// NewActivityRepo создаёт новый экземпляр ActivityRepo c переданным подключением к PostgreSQL.
func NewActivityRepo(db *Postgres) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// ListActivities возвращает все кружки в порядке создания, участников — в порядке записи.
func (r *ActivityRepo) ListActivities(ctx context.Context) (model.Directory, error) {
	rows, err := r.db.GetQueryExecutor(ctx).Query(ctx, `
SELECT a.name, a.description, a.schedule, a.max_participants, p.email
FROM activities a
LEFT JOIN participants p ON p.activity_id = a.id
ORDER BY a.id, p.id
`)
	if err != nil {
		return model.Directory{}, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var (
		dir     model.Directory
		current *model.Activity
	)

	for rows.Next() {
		var a model.Activity
		var email *string

		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants, &email); err != nil {
			return model.Directory{}, fmt.Errorf("scan row: %w", err)
		}

		if current == nil || current.Name != a.Name {
			if current != nil {
				dir.Put(*current)
			}
			a.Participants = make([]string, 0)
			current = &a
		}
		if email != nil {
			current.Participants = append(current.Participants, *email)
		}
	}

	if err := rows.Err(); err != nil {
		return model.Directory{}, fmt.Errorf("rows error: %w", err)
	}
	if current != nil {
		dir.Put(*current)
	}

	return dir, nil
}

// GetActivity возвращает кружок по имени вместе с участниками.
// Если кружок не найден, возвращает ErrActivityNotFound.
func (r *ActivityRepo) GetActivity(ctx context.Context, name string) (model.Activity, error) {
	q := r.db.GetQueryExecutor(ctx)

	var (
		id int64
		a  = model.Activity{Name: name, Participants: make([]string, 0)}
	)
	err := q.QueryRow(ctx, `
SELECT id, description, schedule, max_participants
FROM activities
WHERE name = $1
`, name).Scan(&id, &a.Description, &a.Schedule, &a.MaxParticipants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Activity{}, ErrActivityNotFound
		}
		return model.Activity{}, fmt.Errorf("get activity: %w", err)
	}

	rows, err := q.Query(ctx, `SELECT email FROM participants WHERE activity_id = $1 ORDER BY id`, id)
	if err != nil {
		return model.Activity{}, fmt.Errorf("query participants: %w", err)
	}
	emails, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return model.Activity{}, fmt.Errorf("collect participants: %w", err)
	}
	a.Participants = append(a.Participants, emails...)

	return a, nil
}

// AddParticipant записывает email на кружок.
// Возвращает ErrActivityNotFound или ErrAlreadySignedUp.
func (r *ActivityRepo) AddParticipant(ctx context.Context, name, email string) error {
	q := r.db.GetQueryExecutor(ctx)

	var id int64
	err := q.QueryRow(ctx, `SELECT id FROM activities WHERE name = $1 FOR UPDATE`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("lock activity: %w", err)
	}

	_, err = q.Exec(ctx, `INSERT INTO participants (activity_id, email) VALUES ($1, $2)`, id, email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// уникальное ограничение (activity_id, email) нарушено
			return ErrAlreadySignedUp
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

// RemoveParticipant выписывает email из кружка.
// Возвращает ErrActivityNotFound или ErrParticipantNotFound.
func (r *ActivityRepo) RemoveParticipant(ctx context.Context, name, email string) error {
	q := r.db.GetQueryExecutor(ctx)

	var id int64
	err := q.QueryRow(ctx, `SELECT id FROM activities WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("get activity: %w", err)
	}

	tag, err := q.Exec(ctx, `DELETE FROM participants WHERE activity_id = $1 AND email = $2`, id, email)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// SeedIfEmpty заполняет пустую базу стартовым набором кружков одним батчем.
// Если кружки уже есть, ничего не делает.
func (r *ActivityRepo) SeedIfEmpty(ctx context.Context, seed []model.Activity) (bool, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var count int
	if err = tx.QueryRow(ctx, `SELECT count(*) FROM activities`).Scan(&count); err != nil {
		return false, fmt.Errorf("count activities: %w", err)
	}
	if count > 0 {
		err = tx.Commit(ctx)
		return false, err
	}

	for _, a := range seed {
		var id int64
		err = tx.QueryRow(ctx, `
INSERT INTO activities (name, description, schedule, max_participants)
VALUES ($1, $2, $3, $4)
RETURNING id
`, a.Name, a.Description, a.Schedule, a.MaxParticipants).Scan(&id)
		if err != nil {
			return false, fmt.Errorf("insert activity %s: %w", a.Name, err)
		}

		batch := &pgx.Batch{}
		for _, email := range a.Participants {
			batch.Queue(`INSERT INTO participants (activity_id, email) VALUES ($1, $2)`, id, email)
		}
		if batch.Len() > 0 {
			if err = tx.SendBatch(ctx, batch).Close(); err != nil {
				return false, fmt.Errorf("insert participants of %s: %w", a.Name, err)
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return true, nil
}
