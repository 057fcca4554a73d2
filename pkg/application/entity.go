package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status of an application. Pending -> Reviewed -> Interview ends in
// Rejected or Hired. Only admin action mutates it.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusReviewed  Status = "Reviewed"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusHired     Status = "Hired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Application links one student to one job. At most one per (job, student)
// pair; the unique constraint makes duplicate inserts idempotent.
type Application struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	StudentID uuid.UUID `json:"studentId"`
	Status    Status    `json:"status"`
	AppliedAt time.Time `json:"appliedAt"`
}

var (
	ErrNotFound = errors.New("application not found")
	// ErrDuplicate is the structured contract for a unique-violation on
	// insert. Callers treat it as success, never as a failure.
	ErrDuplicate = errors.New("application already exists")
)

type Repository interface {
	// Create returns ErrDuplicate on a (job, student) unique violation.
	Create(ctx context.Context, a Application) error
	HasApplied(ctx context.Context, jobID, studentID uuid.UUID) (bool, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error)
	CountByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) error
	DeleteByStudent(ctx context.Context, studentID uuid.UUID) error
}
