// Package service содержит бизнес-логику записи на кружки и выписки из них.
package service

import (
	"context"
	"errors"
	"fmt"

	"activity-signup/internal/model"
	"activity-signup/internal/repository"
)

const (
	// CodeAlreadySignedUp — код доменной ошибки повторной записи.
	CodeAlreadySignedUp = "ALREADY_SIGNED_UP"

	msgActivityNotFound    = "Activity not found"
	msgAlreadySignedUp     = "Student already signed up for this activity"
	msgParticipantNotFound = "Participant not found for this activity"
)

// ActivityRepository описывает контракт хранилища кружков для бизнес-слоя.
type ActivityRepository interface {
	ListActivities(ctx context.Context) (model.Directory, error)
	AddParticipant(ctx context.Context, name, email string) error
	RemoveParticipant(ctx context.Context, name, email string) error
}

// TransactionManager описывает интерфейс для управления транзакциями (чтобы можно было мокать).
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ActivityService инкапсулирует запись на кружки, выписку и чтение справочника.
type ActivityService struct {
	repo      ActivityRepository
	txManager TransactionManager
}

// NewActivityService создаёт новый сервис кружков.
func NewActivityService(repo ActivityRepository, txManager TransactionManager) *ActivityService {
	return &ActivityService{
		repo:      repo,
		txManager: txManager,
	}
}

// ListActivities возвращает полный справочник кружков.
func (s *ActivityService) ListActivities(ctx context.Context) (model.Directory, error) {
	dir, err := s.repo.ListActivities(ctx)
	if err != nil {
		return model.Directory{}, ErrInternal("failed to list activities", err)
	}
	return dir, nil
}

// Signup записывает email на кружок и возвращает сообщение для пользователя.
// Формат email не проверяется: это делает (или не делает) клиент.
func (s *ActivityService) Signup(ctx context.Context, name, email string) (string, error) {
	if email == "" {
		return "", ErrBadRequest("email is required")
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.AddParticipant(ctx, name, email)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrActivityNotFound):
			return "", ErrNotFound(msgActivityNotFound)
		case errors.Is(err, repository.ErrAlreadySignedUp):
			return "", ErrDomain(CodeAlreadySignedUp, msgAlreadySignedUp)
		}
		return "", ErrInternal("failed to sign up", err)
	}

	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister выписывает email из кружка и возвращает сообщение для пользователя.
func (s *ActivityService) Unregister(ctx context.Context, name, email string) (string, error) {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.RemoveParticipant(ctx, name, email)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrActivityNotFound):
			return "", ErrNotFound(msgActivityNotFound)
		case errors.Is(err, repository.ErrParticipantNotFound):
			return "", ErrNotFound(msgParticipantNotFound)
		}
		return "", ErrInternal("failed to unregister", err)
	}

	return fmt.Sprintf("Removed %s from %s", email, name), nil
}
