package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumni-labs/bolsa/pkg/profile"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string, role profile.Role, name string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type AuthResult struct {
	Account Account
	Token   string
}

type authService struct {
	accounts AccountRepository
	profiles profile.Repository
	tokens   TokenGenerator
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(accounts AccountRepository, profiles profile.Repository, tokens TokenGenerator) AuthUseCase {
	return &authService{accounts: accounts, profiles: profiles, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, email, password string, role profile.Role, name string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || !role.Valid() {
		return AuthResult{}, ErrInvalidCredentials
	}

	// If account exists, fail fast (best-effort check; the unique index is
	// the real guard)
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	acc := Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		return AuthResult{}, err
	}
	// Bootstrap the profile row alongside the account. A failure here is
	// tolerated: admin update-profile can repair it.
	_ = s.profiles.Create(ctx, profile.Profile{
		ID:        acc.ID,
		Role:      role,
		FirstName: strings.TrimSpace(name),
		CreatedAt: acc.CreatedAt,
	})
	// No session token until the email is confirmed.
	return AuthResult{Account: acc}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	acc, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !acc.EmailConfirmed {
		return AuthResult{}, ErrEmailNotConfirmed
	}
	token, err := s.tokens.Generate(ctx, acc)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Account: acc, Token: token}, nil
}
