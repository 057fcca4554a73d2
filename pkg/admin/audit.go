package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one appended moderation-log row. Audit writes triggered as a
// side effect of other operations are best-effort and swallowed on failure;
// only the explicit log endpoint reports errors.
type AuditEntry struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   string         `json:"actorId"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entityId,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type AuditRepository interface {
	Append(ctx context.Context, e AuditEntry) error
}
