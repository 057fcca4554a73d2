package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/pkg/profile"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("account not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
)

// AccountRepository abstracts persistence concerns from the domain layer.
// The admin use cases share it for account moderation (confirm, delete, list).
type AccountRepository interface {
	Create(ctx context.Context, acc Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	ConfirmEmail(ctx context.Context, id uuid.UUID) error
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// SetRole mirrors a profile role change into the account; best-effort
	// from the caller's point of view.
	SetRole(ctx context.Context, id uuid.UUID, role profile.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns accounts ordered by creation time, newest first.
	List(ctx context.Context, limit int) ([]Account, error)
}
