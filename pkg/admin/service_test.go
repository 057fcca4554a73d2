package admin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumni-labs/bolsa/pkg/application"
	"github.com/alumni-labs/bolsa/pkg/auth"
	"github.com/alumni-labs/bolsa/pkg/company"
	"github.com/alumni-labs/bolsa/pkg/cv"
	"github.com/alumni-labs/bolsa/pkg/job"
	"github.com/alumni-labs/bolsa/pkg/profile"
)

// calls records the order of destructive operations across the fakes.
type calls struct {
	mu  sync.Mutex
	ops []string
}

func (c *calls) add(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, op)
}

type fakeAccounts struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]auth.Account
	calls    *calls
	roleSets int
}

func newFakeAccounts(calls *calls) *fakeAccounts {
	return &fakeAccounts{byID: map[uuid.UUID]auth.Account{}, calls: calls}
}

func (r *fakeAccounts) Create(_ context.Context, acc auth.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == acc.Email {
			return auth.ErrUserAlreadyExists
		}
	}
	r.byID[acc.ID] = acc
	return nil
}

func (r *fakeAccounts) GetByEmail(_ context.Context, email string) (auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acc := range r.byID {
		if acc.Email == email {
			return acc, nil
		}
	}
	return auth.Account{}, auth.ErrNotFound
}

func (r *fakeAccounts) GetByID(_ context.Context, id uuid.UUID) (auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.byID[id]
	if !ok {
		return auth.Account{}, auth.ErrNotFound
	}
	return acc, nil
}

func (r *fakeAccounts) ConfirmEmail(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.byID[id]
	if !ok {
		return auth.ErrNotFound
	}
	acc.EmailConfirmed = true
	r.byID[id] = acc
	return nil
}

func (r *fakeAccounts) SetPassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.byID[id]
	if !ok {
		return auth.ErrNotFound
	}
	acc.PasswordHash = hash
	r.byID[id] = acc
	return nil
}

func (r *fakeAccounts) SetRole(_ context.Context, id uuid.UUID, role profile.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roleSets++
	acc, ok := r.byID[id]
	if !ok {
		return auth.ErrNotFound
	}
	acc.Role = role
	r.byID[id] = acc
	return nil
}

func (r *fakeAccounts) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls.add("accounts.delete")
	delete(r.byID, id)
	return nil
}

func (r *fakeAccounts) List(_ context.Context, limit int) ([]auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []auth.Account
	for _, acc := range r.byID {
		out = append(out, acc)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeProfiles struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]profile.Profile
	calls *calls
}

func newFakeProfiles(calls *calls) *fakeProfiles {
	return &fakeProfiles{byID: map[uuid.UUID]profile.Profile{}, calls: calls}
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

func (r *fakeProfiles) Update(_ context.Context, id uuid.UUID, u profile.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return profile.ErrNotFound
	}
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.University != nil {
		p.University = *u.University
	}
	if u.Role != nil {
		p.Role = *u.Role
	}
	if u.CompanyVerified != nil {
		p.CompanyVerified = *u.CompanyVerified
	}
	if u.ProfileImageURL != nil {
		p.ProfileImageURL = *u.ProfileImageURL
	}
	r.byID[id] = p
	return nil
}

func (r *fakeProfiles) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls.add("profiles.delete")
	if _, ok := r.byID[id]; !ok {
		return profile.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeProfiles) ListByIDs(_ context.Context, ids []uuid.UUID) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.Profile
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCompanies struct {
	mu      sync.Mutex
	byOwner map[uuid.UUID][]uuid.UUID
	calls   *calls
}

func newFakeCompanies(calls *calls) *fakeCompanies {
	return &fakeCompanies{byOwner: map[uuid.UUID][]uuid.UUID{}, calls: calls}
}

func (r *fakeCompanies) Create(context.Context, company.Company) error { return nil }
func (r *fakeCompanies) GetByID(context.Context, uuid.UUID) (company.Company, error) {
	return company.Company{}, company.ErrNotFound
}
func (r *fakeCompanies) GetByOwner(context.Context, uuid.UUID) (company.Company, error) {
	return company.Company{}, company.ErrNotFound
}
func (r *fakeCompanies) List(context.Context) ([]company.Company, error) { return nil, nil }
func (r *fakeCompanies) ListByIDs(context.Context, []uuid.UUID) ([]company.Company, error) {
	return nil, nil
}

func (r *fakeCompanies) ListIDsByOwner(_ context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byOwner[ownerID], nil
}

func (r *fakeCompanies) SetVerified(context.Context, uuid.UUID, bool) error  { return nil }
func (r *fakeCompanies) SetSuspended(context.Context, uuid.UUID, bool) error { return nil }

func (r *fakeCompanies) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	r.calls.add("companies.delete")
	return nil
}

type fakeJobs struct {
	mu          sync.Mutex
	byCompany   map[uuid.UUID][]uuid.UUID
	calls       *calls
	lastCreated job.Job
}

func newFakeJobs(calls *calls) *fakeJobs {
	return &fakeJobs{byCompany: map[uuid.UUID][]uuid.UUID{}, calls: calls}
}

func (r *fakeJobs) Create(_ context.Context, j job.Job) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCreated = j
	return j.ID, nil
}

func (r *fakeJobs) Update(context.Context, uuid.UUID, job.Update) error { return nil }
func (r *fakeJobs) GetByID(context.Context, uuid.UUID) (job.Job, error) {
	return job.Job{}, job.ErrNotFound
}
func (r *fakeJobs) ListActive(context.Context) ([]job.Job, error)             { return nil, nil }
func (r *fakeJobs) ListByIDs(context.Context, []uuid.UUID) ([]job.Job, error) { return nil, nil }
func (r *fakeJobs) ListByCompany(context.Context, uuid.UUID) ([]job.Job, error) {
	return nil, nil
}

func (r *fakeJobs) ListIDsByCompanyIDs(_ context.Context, companyIDs []uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uuid.UUID
	for _, cid := range companyIDs {
		out = append(out, r.byCompany[cid]...)
	}
	return out, nil
}

func (r *fakeJobs) IncrementViews(context.Context, uuid.UUID) error  { return nil }
func (r *fakeJobs) SetActive(context.Context, uuid.UUID, bool) error { return nil }
func (r *fakeJobs) DeleteByCompanyIDs(context.Context, []uuid.UUID) error {
	r.calls.add("jobs.delete")
	return nil
}

type fakeApps struct{ calls *calls }

func (r *fakeApps) Create(context.Context, application.Application) error { return nil }
func (r *fakeApps) HasApplied(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (r *fakeApps) ListByStudent(context.Context, uuid.UUID) ([]application.Application, error) {
	return nil, nil
}
func (r *fakeApps) CountByJobIDs(context.Context, []uuid.UUID) (map[uuid.UUID]int, error) {
	return nil, nil
}
func (r *fakeApps) UpdateStatus(context.Context, uuid.UUID, application.Status) error { return nil }
func (r *fakeApps) DeleteByJobIDs(context.Context, []uuid.UUID) error {
	r.calls.add("apps.deleteByJobs")
	return nil
}
func (r *fakeApps) DeleteByStudent(context.Context, uuid.UUID) error {
	r.calls.add("apps.deleteByStudent")
	return nil
}

type fakeCVs struct{ calls *calls }

func (r *fakeCVs) GetByOwner(context.Context, uuid.UUID) (cv.CV, error) {
	return cv.CV{}, cv.ErrNotFound
}
func (r *fakeCVs) Upsert(context.Context, uuid.UUID, cv.CV) error { return nil }
func (r *fakeCVs) DeleteByOwner(context.Context, uuid.UUID) error {
	r.calls.add("cvs.delete")
	return nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (r *fakeAudit) Append(_ context.Context, e AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

type fixture struct {
	svc       UseCase
	calls     *calls
	accounts  *fakeAccounts
	profiles  *fakeProfiles
	companies *fakeCompanies
	jobs      *fakeJobs
	audit     *fakeAudit
}

func newFixture() *fixture {
	c := &calls{}
	accounts := newFakeAccounts(c)
	profiles := newFakeProfiles(c)
	companies := newFakeCompanies(c)
	jobs := newFakeJobs(c)
	audit := &fakeAudit{}
	svc := NewService(accounts, profiles, companies, jobs, &fakeApps{calls: c}, &fakeCVs{calls: c}, audit)
	return &fixture{svc: svc, calls: c, accounts: accounts, profiles: profiles, companies: companies, jobs: jobs, audit: audit}
}

func (f *fixture) seedUser(role profile.Role, email string) uuid.UUID {
	id := uuid.New()
	f.accounts.byID[id] = auth.Account{ID: id, Email: email, Role: role, CreatedAt: time.Now().UTC()}
	f.profiles.byID[id] = profile.Profile{ID: id, Role: role, CreatedAt: time.Now().UTC()}
	return id
}

func TestDeleteUserCompanyCascadeOrder(t *testing.T) {
	f := newFixture()
	owner := f.seedUser(profile.RoleCompany, "empresa@example.com")
	companyID := uuid.New()
	f.companies.byOwner[owner] = []uuid.UUID{companyID}
	f.jobs.byCompany[companyID] = []uuid.UUID{uuid.New(), uuid.New()}

	require.NoError(t, f.svc.DeleteUser(context.Background(), owner))
	assert.Equal(t, []string{
		"apps.deleteByJobs",
		"jobs.delete",
		"companies.delete",
		"profiles.delete",
		"accounts.delete",
	}, f.calls.ops)
}

func TestDeleteUserStudentCascadeOrder(t *testing.T) {
	f := newFixture()
	studentID := f.seedUser(profile.RoleStudent, "alumno@example.com")

	require.NoError(t, f.svc.DeleteUser(context.Background(), studentID))
	assert.Equal(t, []string{
		"apps.deleteByStudent",
		"cvs.delete",
		"profiles.delete",
		"accounts.delete",
	}, f.calls.ops)
}

func TestDeleteUserWithoutProfileStillDeletesAccount(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.accounts.byID[id] = auth.Account{ID: id, Email: "huerfano@example.com"}

	require.NoError(t, f.svc.DeleteUser(context.Background(), id))
	assert.Contains(t, f.calls.ops, "accounts.delete")
	assert.Empty(t, f.accounts.byID)
}

func TestResolveUserByEmail(t *testing.T) {
	f := newFixture()
	id := f.seedUser(profile.RoleStudent, "ana@example.com")

	got, err := f.svc.ResolveUser(context.Background(), "", "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = f.svc.ResolveUser(context.Background(), "", "nadie@example.com")
	assert.Error(t, err)
}

func TestAuthorizeUserConfirmsEmail(t *testing.T) {
	f := newFixture()
	id := f.seedUser(profile.RoleStudent, "ana@example.com")

	require.NoError(t, f.svc.AuthorizeUser(context.Background(), id))
	assert.True(t, f.accounts.byID[id].EmailConfirmed)
}

func TestSearchUsersFiltersAndClamps(t *testing.T) {
	f := newFixture()
	f.seedUser(profile.RoleStudent, "ana@uni.edu")
	f.seedUser(profile.RoleCompany, "rrhh@acme.com")

	users, err := f.svc.SearchUsers(context.Background(), SearchQuery{Email: "uni.edu"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ana@uni.edu", users[0].Email)
	assert.Equal(t, "STUDENT", users[0].Role)

	users, err = f.svc.SearchUsers(context.Background(), SearchQuery{Role: "COMPANY"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "rrhh@acme.com", users[0].Email)

	// Absurd limits clamp instead of failing.
	_, err = f.svc.SearchUsers(context.Background(), SearchQuery{Limit: 10000})
	require.NoError(t, err)
}

func TestUpdateProfileMirrorsRole(t *testing.T) {
	f := newFixture()
	id := f.seedUser(profile.RoleStudent, "ana@example.com")

	role := profile.RoleCompany
	require.NoError(t, f.svc.UpdateProfile(context.Background(), id, profile.Update{Role: &role}))
	assert.Equal(t, profile.RoleCompany, f.profiles.byID[id].Role)
	assert.Equal(t, profile.RoleCompany, f.accounts.byID[id].Role)
	assert.Equal(t, 1, f.accounts.roleSets)
}

func TestCreateUserStartsConfirmed(t *testing.T) {
	f := newFixture()

	id, err := f.svc.CreateUser(context.Background(), "Nuevo@Example.com", "secreto1", profile.RoleStudent, "Nuevo")
	require.NoError(t, err)

	acc := f.accounts.byID[id]
	assert.Equal(t, "nuevo@example.com", acc.Email)
	assert.True(t, acc.EmailConfirmed)
	assert.NotEqual(t, "secreto1", acc.PasswordHash, "password must be hashed")
	assert.Equal(t, profile.RoleStudent, f.profiles.byID[id].Role)
}

func TestResetPassword(t *testing.T) {
	f := newFixture()
	id := f.seedUser(profile.RoleStudent, "ana@example.com")
	before := f.accounts.byID[id].PasswordHash

	require.NoError(t, f.svc.ResetPassword(context.Background(), id, "nuevo-secreto"))
	assert.NotEqual(t, before, f.accounts.byID[id].PasswordHash)

	assert.Error(t, f.svc.ResetPassword(context.Background(), id, ""))
}

func TestLogFillsDefaults(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.Log(context.Background(), AuditEntry{Action: "delete-user", Entity: "user"}))
	require.Len(t, f.audit.entries, 1)
	e := f.audit.entries[0]
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
}
