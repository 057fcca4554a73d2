package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumni-labs/bolsa/pkg/application"
	"github.com/alumni-labs/bolsa/pkg/auth"
	"github.com/alumni-labs/bolsa/pkg/company"
	"github.com/alumni-labs/bolsa/pkg/cv"
	"github.com/alumni-labs/bolsa/pkg/job"
	"github.com/alumni-labs/bolsa/pkg/profile"
)

// searchListCap bounds how many accounts a search scans.
const searchListCap = 200

// UserSummary is one search-users result row: the auth account joined with
// its profile data.
type UserSummary struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	EmailVerified   bool      `json:"email_verified"`
	FirstName       string    `json:"first_name,omitempty"`
	Role            string    `json:"role"`
	University      string    `json:"university,omitempty"`
	CompanyVerified bool      `json:"company_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// SearchQuery filters the user listing. Limit is clamped to 50.
type SearchQuery struct {
	Email      string
	Role       string
	University string
	Limit      int
}

// UseCase covers the privileged moderation operations behind the admin
// proxy endpoints. Each op performs the single remote mutation (or the
// documented delete cascade) and nothing else.
type UseCase interface {
	ResolveUser(ctx context.Context, userID, email string) (uuid.UUID, error)
	AuthorizeUser(ctx context.Context, id uuid.UUID) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SearchUsers(ctx context.Context, q SearchQuery) ([]UserSummary, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, u profile.Update) error
	CreateUser(ctx context.Context, email, password string, role profile.Role, name string) (uuid.UUID, error)
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error
	Log(ctx context.Context, e AuditEntry) error
}

type service struct {
	accounts  auth.AccountRepository
	profiles  profile.Repository
	companies company.Repository
	jobs      job.Repository
	apps      application.Repository
	cvs       cv.Repository
	audit     AuditRepository
}

func NewService(
	accounts auth.AccountRepository,
	profiles profile.Repository,
	companies company.Repository,
	jobs job.Repository,
	apps application.Repository,
	cvs cv.Repository,
	audit AuditRepository,
) UseCase {
	return &service{
		accounts:  accounts,
		profiles:  profiles,
		companies: companies,
		jobs:      jobs,
		apps:      apps,
		cvs:       cvs,
		audit:     audit,
	}
}

// ResolveUser accepts either an explicit account id or an email to look up.
func (s *service) ResolveUser(ctx context.Context, userID, email string) (uuid.UUID, error) {
	if userID != "" {
		return uuid.Parse(userID)
	}
	acc, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return uuid.Nil, err
	}
	return acc.ID, nil
}

func (s *service) AuthorizeUser(ctx context.Context, id uuid.UUID) error {
	return s.accounts.ConfirmEmail(ctx, id)
}

// DeleteUser removes the account and everything hanging off it, in
// dependency order. For a company owner: the applications of its jobs, the
// jobs, the companies. For a student: its applications and CV. Then the
// profile row and finally the auth account. Mid-cascade failures on the
// dependent rows are tolerated so a partial previous run can be repaired by
// re-running the delete.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	role := profile.Role("")
	if p, err := s.profiles.GetByID(ctx, id); err == nil {
		role = p.Role
	}

	switch role {
	case profile.RoleCompany:
		companyIDs, err := s.companies.ListIDsByOwner(ctx, id)
		if err == nil && len(companyIDs) > 0 {
			if jobIDs, jerr := s.jobs.ListIDsByCompanyIDs(ctx, companyIDs); jerr == nil && len(jobIDs) > 0 {
				_ = s.apps.DeleteByJobIDs(ctx, jobIDs)
			}
			_ = s.jobs.DeleteByCompanyIDs(ctx, companyIDs)
			_ = s.companies.DeleteByIDs(ctx, companyIDs)
		}
	case profile.RoleStudent:
		_ = s.apps.DeleteByStudent(ctx, id)
		_ = s.cvs.DeleteByOwner(ctx, id)
	}

	if err := s.profiles.Delete(ctx, id); err != nil && !errors.Is(err, profile.ErrNotFound) {
		return err
	}
	return s.accounts.Delete(ctx, id)
}

func (s *service) SearchUsers(ctx context.Context, q SearchQuery) ([]UserSummary, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	accounts, err := s.accounts.List(ctx, searchListCap)
	if err != nil {
		return nil, err
	}

	emailQ := strings.TrimSpace(strings.ToLower(q.Email))
	var matched []auth.Account
	ids := make([]uuid.UUID, 0, len(accounts))
	for _, acc := range accounts {
		if emailQ != "" && !strings.Contains(strings.ToLower(acc.Email), emailQ) {
			continue
		}
		matched = append(matched, acc)
		ids = append(ids, acc.ID)
	}

	profiles, err := s.profiles.ListByIDs(ctx, ids)
	if err != nil {
		profiles = nil // profile join is best-effort
	}
	byID := make(map[uuid.UUID]profile.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	uniQ := strings.TrimSpace(strings.ToLower(q.University))
	results := make([]UserSummary, 0, limit)
	for _, acc := range matched {
		p, hasProfile := byID[acc.ID]
		role := profile.RoleStudent
		if hasProfile {
			role = p.Role
		}
		if q.Role != "" && string(role) != q.Role {
			continue
		}
		if uniQ != "" && !strings.Contains(strings.ToLower(p.University), uniQ) {
			continue
		}
		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = acc.CreatedAt
		}
		results = append(results, UserSummary{
			ID:              acc.ID,
			Email:           acc.Email,
			EmailVerified:   acc.EmailConfirmed,
			FirstName:       p.FirstName,
			Role:            string(role),
			University:      p.University,
			CompanyVerified: p.CompanyVerified,
			CreatedAt:       createdAt,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// UpdateProfile applies the partial change to the profile row, then mirrors
// a role change into the auth account as a best-effort dual write.
func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, u profile.Update) error {
	if err := s.profiles.Update(ctx, id, u); err != nil {
		return err
	}
	if u.Role != nil {
		_ = s.accounts.SetRole(ctx, id, *u.Role)
	}
	return nil
}

// CreateUser provisions an account directly, bypassing the signup flow.
// Admin-created accounts start email-confirmed.
func (s *service) CreateUser(ctx context.Context, email, password string, role profile.Role, name string) (uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || !role.Valid() {
		return uuid.Nil, errors.New("email, password and role are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}
	acc := auth.Account{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		EmailConfirmed: true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		return uuid.Nil, err
	}
	_ = s.profiles.Create(ctx, profile.Profile{
		ID:        acc.ID,
		Role:      role,
		FirstName: strings.TrimSpace(name),
		CreatedAt: acc.CreatedAt,
	})
	return acc.ID, nil
}

func (s *service) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if newPassword == "" {
		return errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.SetPassword(ctx, id, string(hash))
}

func (s *service) Log(ctx context.Context, e AuditEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return s.audit.Append(ctx, e)
}
