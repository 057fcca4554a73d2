package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumni-labs/bolsa/pkg/admin"
)

// AuditRepository appends admin moderation log rows.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) (*AuditRepository, error) {
	r := &AuditRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *AuditRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS admin_logs (
	id UUID PRIMARY KEY,
	actor_id TEXT NOT NULL,
	action TEXT NOT NULL,
	entity TEXT NOT NULL,
	entity_id TEXT,
	details JSONB,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *AuditRepository) Append(ctx context.Context, e admin.AuditEntry) error {
	var details []byte
	if e.Details != nil {
		var err error
		details, err = json.Marshal(e.Details)
		if err != nil {
			return err
		}
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO admin_logs (id, actor_id, action, entity, entity_id, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, e.ID, e.ActorID, e.Action, e.Entity, nullIfEmpty(e.EntityID), details, e.CreatedAt)
	return err
}
