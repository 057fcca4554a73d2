package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumni-labs/bolsa/pkg/cv"
)

// CVRepository stores one CV row per owner: the structured document as
// JSONB plus the PDF reference URL in its own column. The stored JSON never
// carries the inline payload.
type CVRepository struct {
	pool *pgxpool.Pool
}

func NewCVRepository(pool *pgxpool.Pool) (*CVRepository, error) {
	r := &CVRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CVRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS cvs (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL UNIQUE,
	data JSONB NOT NULL,
	pdf_url TEXT,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *CVRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (cv.CV, error) {
	row := r.pool.QueryRow(ctx, `
SELECT data, pdf_url FROM cvs WHERE owner_id = $1
`, ownerID)
	var data []byte
	var pdfURL *string
	if err := row.Scan(&data, &pdfURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cv.CV{}, cv.ErrNotFound
		}
		return cv.CV{}, err
	}
	var doc cv.CV
	if err := json.Unmarshal(data, &doc); err != nil {
		return cv.CV{}, err
	}
	doc.OwnerID = ownerID
	// The URL column is authoritative over whatever the JSON carries.
	doc.PDFData = nil
	if pdfURL != nil {
		doc.PDFURL = *pdfURL
	}
	return doc, nil
}

func (r *CVRepository) Upsert(ctx context.Context, ownerID uuid.UUID, doc cv.CV) error {
	doc.OwnerID = ownerID
	doc.PDFData = nil
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO cvs (id, owner_id, data, pdf_url, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (owner_id) DO UPDATE SET
	data = EXCLUDED.data,
	pdf_url = EXCLUDED.pdf_url,
	updated_at = EXCLUDED.updated_at
`, uuid.New(), ownerID, data, nullIfEmpty(doc.PDFURL), time.Now().UTC())
	return err
}

func (r *CVRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cvs WHERE owner_id = $1`, ownerID)
	return err
}
