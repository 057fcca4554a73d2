package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role of an account within the job board.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// Profile mirrors the account's public data. It is kept in sync with the
// auth account by best-effort dual writes.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	Role            Role      `json:"role"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	University      string    `json:"university,omitempty"`
	CompanyVerified bool      `json:"companyVerified"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Update carries a partial profile change; nil fields are left untouched.
type Update struct {
	FirstName       *string
	LastName        *string
	University      *string
	Role            *Role
	CompanyVerified *bool
	ProfileImageURL *string
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.University == nil &&
		u.Role == nil && u.CompanyVerified == nil && u.ProfileImageURL == nil
}

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	Update(ctx context.Context, id uuid.UUID, u Update) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Profile, error)
}
