package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Company is owned by exactly one account. Verification and suspension are
// controlled exclusively by admin action.
type Company struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId,omitempty"`
	Name        string    `json:"name"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`

	// Registration data
	Email         string `json:"email,omitempty"`
	LegalName     string `json:"legalName,omitempty"`
	Industry      string `json:"industry,omitempty"`
	HRContactName string `json:"hrContactName,omitempty"`
	ContactPhone  string `json:"contactPhone,omitempty"`

	Verified  bool `json:"verified"`
	Suspended bool `json:"suspended"`
}

var ErrNotFound = errors.New("company not found")

type Repository interface {
	Create(ctx context.Context, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Company, error)
	List(ctx context.Context) ([]Company, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Company, error)
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}
