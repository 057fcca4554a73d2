package company

import (
	"context"

	"github.com/google/uuid"
)

// UseCase exposes the public company directory.
type UseCase interface {
	List(ctx context.Context) ([]Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Company, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerID uuid.UUID) (Company, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}
