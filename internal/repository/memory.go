package repository

import (
	"context"
	"sync"

	"activity-signup/internal/model"
)

// MemoryRepo хранит справочник кружков в памяти процесса.
// Используется по умолчанию, когда DB_DSN не задан.
type MemoryRepo struct {
	mu  sync.RWMutex
	dir model.Directory
}

// NewMemoryRepo создаёт репозиторий, заполненный копией переданных кружков.
func NewMemoryRepo(seed []model.Activity) *MemoryRepo {
	r := &MemoryRepo{}
	for _, a := range seed {
		r.dir.Put(a.Clone())
	}
	return r
}

// ListActivities возвращает снимок справочника, не разделяющий память с хранилищем.
func (r *MemoryRepo) ListActivities(_ context.Context) (model.Directory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out model.Directory
	for _, a := range r.dir.Activities() {
		out.Put(a.Clone())
	}
	return out, nil
}

// GetActivity возвращает кружок по имени или ErrActivityNotFound.
func (r *MemoryRepo) GetActivity(_ context.Context, name string) (model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.dir.Get(name)
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	return a.Clone(), nil
}

// AddParticipant дописывает email в конец списка участников.
func (r *MemoryRepo) AddParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.dir.Get(name)
	if !ok {
		return ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}

	a = a.Clone()
	a.Participants = append(a.Participants, email)
	r.dir.Put(a)
	return nil
}

// RemoveParticipant удаляет email из списка, сохраняя порядок остальных.
func (r *MemoryRepo) RemoveParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.dir.Get(name)
	if !ok {
		return ErrActivityNotFound
	}
	if !a.HasParticipant(email) {
		return ErrParticipantNotFound
	}

	kept := make([]string, 0, len(a.Participants)-1)
	for _, p := range a.Participants {
		if p != email {
			kept = append(kept, p)
		}
	}
	a.Participants = kept
	r.dir.Put(a)
	return nil
}

// RunInTransaction просто вызывает fn: каждая операция MemoryRepo атомарна по отдельности.
func (r *MemoryRepo) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
