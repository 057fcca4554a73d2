package cv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store adapts the remote CV row, the PDF object store and the local draft
// cache into the load/save contract the builder works against.
type Store struct {
	repo    Repository
	objects ObjectStore
	drafts  DraftCache
}

func NewStore(repo Repository, objects ObjectStore, drafts DraftCache) *Store {
	return &Store{repo: repo, objects: objects, drafts: drafts}
}

// Load fetches the owner's CV. Remote row first; a cached draft is the
// offline fallback; otherwise a fresh scaffold with the session email
// pre-filled. The returned CV always has its array sections non-nil and
// never carries an inline payload from the remote copy.
func (s *Store) Load(ctx context.Context, ownerID uuid.UUID, sessionEmail string) (CV, error) {
	doc, _, err := s.Find(ctx, ownerID, sessionEmail)
	return doc, err
}

// Find is Load plus an existence report: found is false when neither a
// stored row nor a cached draft backs the owner and the result is a fresh
// scaffold.
func (s *Store) Find(ctx context.Context, ownerID uuid.UUID, sessionEmail string) (CV, bool, error) {
	doc, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		doc.OwnerID = ownerID
		doc.PDFData = nil
		if doc.Personal.Email == "" {
			doc.Personal.Email = sessionEmail
		}
		normalize(&doc)
		return doc, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return CV{}, false, err
	}
	if draft, derr := s.drafts.Get(ctx, ownerID); derr == nil {
		draft.OwnerID = ownerID
		normalize(&draft)
		return draft, true, nil
	}
	return Scaffold(ownerID, sessionEmail), false, nil
}

// Save persists the CV. When a new inline PDF payload is attached it is
// uploaded first under a per-owner timestamp-qualified path; only then is
// the row upserted, with the payload stripped and the fresh reference URL in
// place. An upload failure aborts the whole save, leaving the row untouched.
// On success the unstripped snapshot is written to the draft cache
// (best-effort), so a reload before network sync still shows the attachment.
func (s *Store) Save(ctx context.Context, ownerID uuid.UUID, doc CV) (CV, error) {
	doc.OwnerID = ownerID
	normalize(&doc)

	if len(doc.PDFData) > 0 {
		name := doc.PDFFileName
		if strings.TrimSpace(name) == "" {
			name = "cv.pdf"
		}
		path := fmt.Sprintf("%s/%d_%s", ownerID, time.Now().UnixMilli(), name)
		url, err := s.objects.Upload(ctx, path, doc.PDFData, "application/pdf")
		if err != nil {
			return CV{}, fmt.Errorf("upload pdf: %w", err)
		}
		doc.PDFURL = url
	} else if doc.PDFURL == "" {
		// No new payload: keep whatever reference the stored row holds.
		if prev, err := s.repo.GetByOwner(ctx, ownerID); err == nil {
			doc.PDFURL = prev.PDFURL
		}
	}

	stored := doc
	stored.PDFData = nil
	if err := s.repo.Upsert(ctx, ownerID, stored); err != nil {
		return CV{}, err
	}
	_ = s.drafts.Put(ctx, ownerID, doc)
	return stored, nil
}

// Scaffold returns an empty CV ready for editing, with every array section
// initialized and the session email pre-filled.
func Scaffold(ownerID uuid.UUID, sessionEmail string) CV {
	doc := CV{
		OwnerID:  ownerID,
		Personal: Personal{Email: sessionEmail},
	}
	normalize(&doc)
	return doc
}

// normalize makes every optional array section an empty sequence instead of
// nil, so serialized copies always carry the arrays.
func normalize(doc *CV) {
	if doc.Education == nil {
		doc.Education = []Education{}
	}
	if doc.UniversityEducation == nil {
		doc.UniversityEducation = []UniversityEducation{}
	}
	if doc.Experience == nil {
		doc.Experience = []WorkExperience{}
	}
	if doc.Projects == nil {
		doc.Projects = []Project{}
	}
	if doc.Skills == nil {
		doc.Skills = []Skill{}
	}
	if doc.Languages == nil {
		doc.Languages = []LanguageSkill{}
	}
	if doc.TechnicalSkills.Office == nil {
		doc.TechnicalSkills.Office = []TechnicalSkill{}
	}
	if doc.TechnicalSkills.Languages == nil {
		doc.TechnicalSkills.Languages = []LanguageKnowledge{}
	}
	if doc.TechnicalSkills.Design == nil {
		doc.TechnicalSkills.Design = []TechnicalSkill{}
	}
	if doc.TechnicalSkills.Programming == nil {
		doc.TechnicalSkills.Programming = []TechnicalSkill{}
	}
	if doc.TechnicalSkills.ManagementSystems == nil {
		doc.TechnicalSkills.ManagementSystems = []TechnicalSkill{}
	}
	if doc.ComplementaryKnowledge == nil {
		doc.ComplementaryKnowledge = []ComplementaryKnowledge{}
	}
	if doc.TrainingCourses == nil {
		doc.TrainingCourses = []TrainingCourse{}
	}
}
