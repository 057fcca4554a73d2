package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumni-labs/bolsa/pkg/profile"
)

type fakeAccounts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]Account
}

func newFakeAccounts() *fakeAccounts { return &fakeAccounts{byID: map[uuid.UUID]Account{}} }

func (r *fakeAccounts) Create(_ context.Context, acc Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == acc.Email {
			return ErrUserAlreadyExists
		}
	}
	r.byID[acc.ID] = acc
	return nil
}

func (r *fakeAccounts) GetByEmail(_ context.Context, email string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acc := range r.byID {
		if acc.Email == email {
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *fakeAccounts) GetByID(_ context.Context, id uuid.UUID) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *fakeAccounts) ConfirmEmail(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc := r.byID[id]
	acc.EmailConfirmed = true
	r.byID[id] = acc
	return nil
}

func (r *fakeAccounts) SetPassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc := r.byID[id]
	acc.PasswordHash = hash
	r.byID[id] = acc
	return nil
}

func (r *fakeAccounts) SetRole(_ context.Context, id uuid.UUID, role profile.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc := r.byID[id]
	acc.Role = role
	r.byID[id] = acc
	return nil
}

func (r *fakeAccounts) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *fakeAccounts) List(_ context.Context, limit int) ([]Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Account
	for _, acc := range r.byID {
		out = append(out, acc)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeProfiles struct {
	mu   sync.Mutex
	byID map[uuid.UUID]profile.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[uuid.UUID]profile.Profile{}}
}

func (r *fakeProfiles) Create(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (r *fakeProfiles) Update(context.Context, uuid.UUID, profile.Update) error { return nil }
func (r *fakeProfiles) Delete(context.Context, uuid.UUID) error                 { return nil }
func (r *fakeProfiles) ListByIDs(context.Context, []uuid.UUID) ([]profile.Profile, error) {
	return nil, nil
}

type staticTokens struct{}

func (staticTokens) Generate(context.Context, Account) (string, error) { return "token-1", nil }

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	svc := NewAuthService(accounts, profiles, staticTokens{})

	res, err := svc.Register(context.Background(), "  Ana@Example.COM ", "secreto1", profile.RoleStudent, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", res.Account.Email)
	assert.Empty(t, res.Token, "no session until the email is confirmed")
	assert.False(t, res.Account.EmailConfirmed)

	err = bcrypt.CompareHashAndPassword([]byte(res.Account.PasswordHash), []byte("secreto1"))
	assert.NoError(t, err)

	p, err := profiles.GetByID(context.Background(), res.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleStudent, p.Role)
	assert.Equal(t, "Ana", p.FirstName)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := NewAuthService(newFakeAccounts(), newFakeProfiles(), staticTokens{})

	_, err := svc.Register(context.Background(), "ana@example.com", "secreto1", profile.RoleStudent, "")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "ana@example.com", "otro", profile.RoleStudent, "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewAuthService(newFakeAccounts(), newFakeProfiles(), staticTokens{})

	_, err := svc.Register(context.Background(), "", "secreto1", profile.RoleStudent, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(context.Background(), "ana@example.com", "", profile.RoleStudent, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(context.Background(), "ana@example.com", "secreto1", profile.Role("GUEST"), "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRequiresConfirmedEmail(t *testing.T) {
	accounts := newFakeAccounts()
	svc := NewAuthService(accounts, newFakeProfiles(), staticTokens{})

	res, err := svc.Register(context.Background(), "ana@example.com", "secreto1", profile.RoleStudent, "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", "secreto1")
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)

	require.NoError(t, accounts.ConfirmEmail(context.Background(), res.Account.ID))
	logged, err := svc.Login(context.Background(), "ana@example.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", logged.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	accounts := newFakeAccounts()
	svc := NewAuthService(accounts, newFakeProfiles(), staticTokens{})

	res, err := svc.Register(context.Background(), "ana@example.com", "secreto1", profile.RoleStudent, "")
	require.NoError(t, err)
	require.NoError(t, accounts.ConfirmEmail(context.Background(), res.Account.ID))

	_, err = svc.Login(context.Background(), "ana@example.com", "equivocada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "nadie@example.com", "secreto1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
