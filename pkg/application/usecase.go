package application

import (
	"context"

	"github.com/google/uuid"
)

// UseCase covers the student-facing application reads and the admin status
// mutation.
type UseCase interface {
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error)
	HasApplied(ctx context.Context, jobID, studentID uuid.UUID) (bool, error)
	CountByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *service) HasApplied(ctx context.Context, jobID, studentID uuid.UUID) (bool, error) {
	return s.repo.HasApplied(ctx, jobID, studentID)
}

func (s *service) CountByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(jobIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}
	return s.repo.CountByJobIDs(ctx, jobIDs)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return ErrValidation("estado de postulación inválido")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
