package cv

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]CV
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[uuid.UUID]CV{}} }

func (r *fakeRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) (CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.rows[ownerID]
	if !ok {
		return CV{}, ErrNotFound
	}
	return doc, nil
}

func (r *fakeRepo) Upsert(_ context.Context, ownerID uuid.UUID, doc CV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[ownerID] = doc
	return nil
}

func (r *fakeRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, ownerID)
	return nil
}

type fakeObjects struct {
	mu      sync.Mutex
	uploads []string
	fail    bool
}

func (o *fakeObjects) Upload(_ context.Context, path string, _ []byte, _ string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail {
		return "", assert.AnError
	}
	o.uploads = append(o.uploads, path)
	return "http://objects/cvs/" + path, nil
}

type fakeDrafts struct {
	mu   sync.Mutex
	rows map[uuid.UUID]CV
}

func newFakeDrafts() *fakeDrafts { return &fakeDrafts{rows: map[uuid.UUID]CV{}} }

func (d *fakeDrafts) Get(_ context.Context, ownerID uuid.UUID) (CV, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, ok := d.rows[ownerID]
	if !ok {
		return CV{}, ErrNoDraft
	}
	return doc, nil
}

func (d *fakeDrafts) Put(_ context.Context, ownerID uuid.UUID, doc CV) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows[ownerID] = doc
	return nil
}

func (d *fakeDrafts) Delete(_ context.Context, ownerID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.rows, ownerID)
	return nil
}

func TestLoadScaffoldsWhenNothingStored(t *testing.T) {
	store := NewStore(newFakeRepo(), &fakeObjects{}, newFakeDrafts())
	owner := uuid.New()

	doc, err := store.Load(context.Background(), owner, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, owner, doc.OwnerID)
	assert.Equal(t, "ana@example.com", doc.Personal.Email)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Skills)
	assert.NotNil(t, doc.TechnicalSkills.Programming)
	assert.NotNil(t, doc.TrainingCourses)
}

func TestLoadPrefersRemoteOverDraft(t *testing.T) {
	repo := newFakeRepo()
	drafts := newFakeDrafts()
	store := NewStore(repo, &fakeObjects{}, drafts)
	owner := uuid.New()

	remote := completeBase()
	require.NoError(t, repo.Upsert(context.Background(), owner, remote))
	stale := completeBase()
	stale.Personal.FirstName = "Vieja"
	require.NoError(t, drafts.Put(context.Background(), owner, stale))

	doc, err := store.Load(context.Background(), owner, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", doc.Personal.FirstName)
}

func TestLoadFallsBackToDraft(t *testing.T) {
	drafts := newFakeDrafts()
	store := NewStore(newFakeRepo(), &fakeObjects{}, drafts)
	owner := uuid.New()

	draft := completeBase()
	draft.PDFData = []byte("%PDF-1.4")
	require.NoError(t, drafts.Put(context.Background(), owner, draft))

	doc, err := store.Load(context.Background(), owner, "")
	require.NoError(t, err)
	assert.Equal(t, "Ana", doc.Personal.FirstName)
	assert.Equal(t, []byte("%PDF-1.4"), doc.PDFData, "draft keeps the unstripped payload")
}

func TestFindReportsAbsence(t *testing.T) {
	repo := newFakeRepo()
	drafts := newFakeDrafts()
	store := NewStore(repo, &fakeObjects{}, drafts)
	owner := uuid.New()

	doc, found, err := store.Find(context.Background(), owner, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, found, "scaffold does not count as a stored CV")
	assert.Equal(t, "ana@example.com", doc.Personal.Email)

	require.NoError(t, drafts.Put(context.Background(), owner, completeBase()))
	_, found, err = store.Find(context.Background(), owner, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, found, "a cached draft backs the owner")

	require.NoError(t, repo.Upsert(context.Background(), owner, completeBase()))
	_, found, err = store.Find(context.Background(), owner, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSaveUploadsThenStoresStripped(t *testing.T) {
	repo := newFakeRepo()
	objects := &fakeObjects{}
	store := NewStore(repo, objects, newFakeDrafts())
	owner := uuid.New()

	doc := completeBase()
	doc.PDFFileName = "mi cv.pdf"
	doc.PDFData = []byte("%PDF-1.4")

	stored, err := store.Save(context.Background(), owner, doc)
	require.NoError(t, err)
	assert.Nil(t, stored.PDFData, "stored row must not carry the payload")
	assert.Contains(t, stored.PDFURL, owner.String()+"/")
	assert.True(t, strings.HasSuffix(stored.PDFURL, "_mi cv.pdf"))

	require.Len(t, objects.uploads, 1)
	assert.True(t, strings.HasPrefix(objects.uploads[0], owner.String()+"/"))

	row, err := repo.GetByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Nil(t, row.PDFData)
	assert.Equal(t, stored.PDFURL, row.PDFURL)
}

func TestSaveAbortsOnUploadFailure(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, &fakeObjects{fail: true}, newFakeDrafts())
	owner := uuid.New()

	doc := completeBase()
	doc.PDFData = []byte("%PDF-1.4")

	_, err := store.Save(context.Background(), owner, doc)
	require.Error(t, err)
	_, err = repo.GetByOwner(context.Background(), owner)
	assert.ErrorIs(t, err, ErrNotFound, "row must stay untouched when the upload fails")
}

func TestSavePreservesPreviousPDFURL(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, &fakeObjects{}, newFakeDrafts())
	owner := uuid.New()

	first := completeBase()
	first.PDFData = []byte("%PDF-1.4")
	stored, err := store.Save(context.Background(), owner, first)
	require.NoError(t, err)
	require.NotEmpty(t, stored.PDFURL)

	// Second save without a new payload keeps the stored reference.
	second := completeBase()
	second.Personal.Phone = "+54 11 5555-0002"
	again, err := store.Save(context.Background(), owner, second)
	require.NoError(t, err)
	assert.Equal(t, stored.PDFURL, again.PDFURL)
}

func TestSaveRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, &fakeObjects{}, newFakeDrafts())
	owner := uuid.New()

	doc := completeBase()
	doc.UniversityEducation = []UniversityEducation{{
		Career: "Sistemas", University: "UTN",
		ApprovedSubjects: 30, TotalSubjects: 40, StartYear: 2019,
	}}
	doc.TechnicalSkills.Programming = []TechnicalSkill{{Name: "Go", Level: "Avanzado"}}
	doc.TrainingCourses = []TrainingCourse{{Name: "Docker", Institution: "CoderHouse", Duration: 20, Year: 2023, Certified: true}}

	_, err := store.Save(context.Background(), owner, doc)
	require.NoError(t, err)

	loaded, err := store.Load(context.Background(), owner, "")
	require.NoError(t, err)
	assert.Equal(t, doc.UniversityEducation, loaded.UniversityEducation)
	assert.Equal(t, doc.TechnicalSkills.Programming, loaded.TechnicalSkills.Programming)
	assert.Equal(t, doc.TrainingCourses, loaded.TrainingCourses)
	assert.Equal(t, doc.Skills, loaded.Skills)
}
