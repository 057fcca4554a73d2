package job

import (
	"context"

	"github.com/google/uuid"
)

// UseCase covers the public job-board reads. Writes go through the admin
// proxy endpoints only.
type UseCase interface {
	List(ctx context.Context) ([]Job, error)
	// GetByID also counts the view; the counter bump is best-effort.
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Job, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context) ([]Job, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	_ = s.repo.IncrementViews(ctx, id)
	return j, nil
}

func (s *service) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *service) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Job, error) {
	if len(ids) == 0 {
		return []Job{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}
