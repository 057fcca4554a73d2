package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/pkg/cv"
	"github.com/alumni-labs/bolsa/pkg/profile"
)

// State of a single apply action.
type State string

const (
	StateBlocked State = "blocked"
	StateApplied State = "applied"
	StateFailed  State = "failed"
)

// Block reasons. Blocked outcomes are terminal for the action; the user
// must re-trigger after resolving them.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonWrongRole       = "wrong-role"
	ReasonIncompleteCV    = "incomplete-cv"
)

// Result of running the gate once.
type Result struct {
	State  State  `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// Actor is the authenticated session running the apply action. A nil actor
// means no session at all.
type Actor struct {
	ID    uuid.UUID
	Role  profile.Role
	Email string
}

// CVGateway loads the actor's CV for the completeness check.
type CVGateway interface {
	Load(ctx context.Context, ownerID uuid.UUID, sessionEmail string) (cv.CV, error)
}

// Gate orchestrates the apply workflow: authentication check, role check,
// CV completeness check, then an idempotent apply-record insert. It issues
// at most one insert per call and never retries.
type Gate struct {
	apps Repository
	cvs  CVGateway
}

func NewGate(apps Repository, cvs CVGateway) *Gate {
	return &Gate{apps: apps, cvs: cvs}
}

// Apply runs the gate for one explicit user trigger.
//
// The duplicate check short-circuits to Applied without a new write; a
// racing duplicate insert (ErrDuplicate) also resolves to Applied. Any
// other insert failure yields Failed with the reason, and the action may be
// retried by the user.
func (g *Gate) Apply(ctx context.Context, actor *Actor, jobID uuid.UUID) (Result, error) {
	if actor == nil {
		return Result{State: StateBlocked, Reason: ReasonUnauthenticated}, nil
	}
	if actor.Role != profile.RoleStudent {
		return Result{State: StateBlocked, Reason: ReasonWrongRole}, nil
	}
	doc, err := g.cvs.Load(ctx, actor.ID, actor.Email)
	if err != nil || !cv.Complete(doc) {
		return Result{State: StateBlocked, Reason: ReasonIncompleteCV}, nil
	}

	applied, err := g.apps.HasApplied(ctx, jobID, actor.ID)
	if err != nil {
		return Result{State: StateFailed, Reason: err.Error()}, err
	}
	if applied {
		return Result{State: StateApplied}, nil
	}

	err = g.apps.Create(ctx, Application{
		ID:        uuid.New(),
		JobID:     jobID,
		StudentID: actor.ID,
		Status:    StatusPending,
		AppliedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			// Race with another tab: the row exists, which is what the
			// user asked for.
			return Result{State: StateApplied}, nil
		}
		return Result{State: StateFailed, Reason: err.Error()}, err
	}
	return Result{State: StateApplied}, nil
}
