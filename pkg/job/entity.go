package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Modality of a job position.
type Modality string

const (
	ModalityRemote Modality = "Remote"
	ModalityHybrid Modality = "Hybrid"
	ModalityOnSite Modality = "On-site"
)

// Valid reports whether m is one of the accepted values. The check is exact:
// "Onsite" without the hyphen is rejected.
func (m Modality) Valid() bool {
	switch m {
	case ModalityRemote, ModalityHybrid, ModalityOnSite:
		return true
	}
	return false
}

// SalaryRange is an ordered pair; Min <= Max must hold when present.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Job is created through validated admin-proxy calls and soft-deactivated,
// never hard-deleted (except by the account deletion cascade).
type Job struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Area          string       `json:"area"`
	Location      string       `json:"location"`
	ExperienceMin int          `json:"experienceMin"`
	Salary        *SalaryRange `json:"salaryRange,omitempty"`
	Modality      Modality     `json:"modality"`
	CompanyID     uuid.UUID    `json:"companyId"`
	CreatedAt     time.Time    `json:"createdAt"`
	IsActive      bool         `json:"isActive"`
	Views         int          `json:"views"`
}

// Update carries a partial job change; nil fields are left untouched.
type Update struct {
	Title         *string
	Description   *string
	Area          *string
	Location      *string
	ExperienceMin *int
	SalaryMin     *int
	SalaryMax     *int
	Modality      *Modality
	IsActive      *bool
}

func (u Update) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Area == nil &&
		u.Location == nil && u.ExperienceMin == nil && u.SalaryMin == nil &&
		u.SalaryMax == nil && u.Modality == nil && u.IsActive == nil
}

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, u Update) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	// ListActive returns active jobs newest first.
	ListActive(ctx context.Context) ([]Job, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error)
	ListIDsByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) ([]uuid.UUID, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) error
}
