package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/pkg/profile"
)

// Account is a domain entity representing an authentication account.
// Public data (name, university, verification) lives on the profile row;
// the account only carries what login needs.
type Account struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	Role           profile.Role
	EmailConfirmed bool
	CreatedAt      time.Time
}
