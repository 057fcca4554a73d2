package auth

import "context"

// TokenGenerator abstracts session token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, acc Account) (string, error)
}
