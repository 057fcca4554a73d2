package cv

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Personal identification block. BirthDate uses the DD/MM/YYYY format the
// builder form collects.
type Personal struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	DNI       string `json:"dni,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Locality  string `json:"locality,omitempty"`
}

type Links struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type UniversityEducation struct {
	Career           string `json:"career"`
	University       string `json:"university"`
	ApprovedSubjects int    `json:"approvedSubjects"`
	TotalSubjects    int    `json:"totalSubjects"`
	StartYear        int    `json:"startYear"`
	GraduationYear   int    `json:"graduationYear"`
}

type WorkExperience struct {
	Company          string `json:"company"`
	Role             string `json:"role"`
	Responsibilities string `json:"responsibilities"`
	Start            string `json:"start"`
	End              string `json:"end"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
}

// Skill is the legacy flat skill entry (name + 1..5 level).
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type LanguageSkill struct {
	Name    string `json:"name"`
	Written string `json:"written"`
	Spoken  string `json:"spoken"`
}

// TechnicalSkill is a named skill with a proficiency label
// (Básico/Medio/Avanzado/Nativo).
type TechnicalSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type LanguageKnowledge struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// TechnicalSkills groups declared skills by category.
type TechnicalSkills struct {
	Office            []TechnicalSkill    `json:"office"`
	Languages         []LanguageKnowledge `json:"languages"`
	Design            []TechnicalSkill    `json:"design"`
	Programming       []TechnicalSkill    `json:"programming"`
	ManagementSystems []TechnicalSkill    `json:"managementSystems"`
}

type ComplementaryKnowledge struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type TrainingCourse struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Duration    int    `json:"duration"` // hours
	Year        int    `json:"year"`
	Certified   bool   `json:"certified"`
	Description string `json:"description"`
}

// CV is the structured résumé a student maintains. At most one per owner.
//
// PDFData is the transient inline payload carried only until upload; the
// persisted row keeps a reference URL instead.
type CV struct {
	OwnerID                uuid.UUID                `json:"ownerId"`
	Personal               Personal                 `json:"personal"`
	ProfileSummary         string                   `json:"profileSummary,omitempty"`
	CareerObjectives       string                   `json:"careerObjectives,omitempty"`
	Links                  Links                    `json:"links"`
	Education              []Education              `json:"education"`
	UniversityEducation    []UniversityEducation    `json:"universityEducation"`
	Experience             []WorkExperience         `json:"experience"`
	Projects               []Project                `json:"projects"`
	Skills                 []Skill                  `json:"skills"`
	Languages              []LanguageSkill          `json:"languages"`
	TechnicalSkills        TechnicalSkills          `json:"technicalSkills"`
	ComplementaryKnowledge []ComplementaryKnowledge `json:"complementaryKnowledge"`
	TrainingCourses        []TrainingCourse         `json:"trainingCourses"`
	PDFFileName            string                   `json:"pdfFileName,omitempty"`
	PDFData                []byte                   `json:"pdfData,omitempty"`
	PDFURL                 string                   `json:"pdfUrl,omitempty"`
}

// SkillNames collects every declared skill name: the legacy flat list plus
// the categorized technical sections and complementary knowledge.
func (c CV) SkillNames() []string {
	var names []string
	for _, s := range c.Skills {
		names = append(names, s.Name)
	}
	for _, s := range c.TechnicalSkills.Office {
		names = append(names, s.Name)
	}
	for _, s := range c.TechnicalSkills.Languages {
		names = append(names, s.Language)
	}
	for _, s := range c.TechnicalSkills.Design {
		names = append(names, s.Name)
	}
	for _, s := range c.TechnicalSkills.Programming {
		names = append(names, s.Name)
	}
	for _, s := range c.TechnicalSkills.ManagementSystems {
		names = append(names, s.Name)
	}
	for _, s := range c.ComplementaryKnowledge {
		names = append(names, s.Name)
	}
	return names
}

var (
	ErrNotFound = errors.New("cv not found")
	ErrNoDraft  = errors.New("no cached draft")
)

// Repository stores the persisted CV row; the stored copy never carries the
// inline payload, only the reference URL.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (CV, error)
	Upsert(ctx context.Context, ownerID uuid.UUID, doc CV) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// ObjectStore uploads the attached PDF and returns a stable reference URL.
type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// DraftCache mirrors the browser-local draft: an unstripped snapshot used as
// an offline fallback when the remote row is missing.
type DraftCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (CV, error)
	Put(ctx context.Context, ownerID uuid.UUID, doc CV) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// SkillOptionCache persists per-owner custom options for a skill category
// selector.
type SkillOptionCache interface {
	Get(ctx context.Context, ownerID uuid.UUID, category string) ([]string, error)
	Put(ctx context.Context, ownerID uuid.UUID, category string, options []string) error
}
