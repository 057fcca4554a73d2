package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumni-labs/bolsa/pkg/profile"
)

// ProfileRepository stores the per-account profile rows.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
	id UUID PRIMARY KEY,
	role TEXT NOT NULL,
	first_name TEXT,
	last_name TEXT,
	university TEXT,
	company_verified BOOLEAN NOT NULL DEFAULT FALSE,
	profile_image_url TEXT,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO profiles (id, role, first_name, last_name, university, company_verified, profile_image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING
`, p.ID, string(p.Role), nullIfEmpty(p.FirstName), nullIfEmpty(p.LastName), nullIfEmpty(p.University),
		p.CompanyVerified, nullIfEmpty(p.ProfileImageURL), p.CreatedAt)
	return err
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, role, first_name, last_name, university, company_verified, profile_image_url, created_at
FROM profiles WHERE id = $1
`, id)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	var role string
	var firstName, lastName, university, imageURL *string
	var createdAt time.Time
	if err := row.Scan(&p.ID, &role, &firstName, &lastName, &university, &p.CompanyVerified, &imageURL, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.Role = profile.Role(role)
	p.FirstName = deref(firstName)
	p.LastName = deref(lastName)
	p.University = deref(university)
	p.ProfileImageURL = deref(imageURL)
	p.CreatedAt = createdAt.UTC()
	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, u profile.Update) error {
	if u.Empty() {
		return nil
	}
	set := ""
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if u.FirstName != nil {
		add("first_name", nullIfEmpty(*u.FirstName))
	}
	if u.LastName != nil {
		add("last_name", nullIfEmpty(*u.LastName))
	}
	if u.University != nil {
		add("university", nullIfEmpty(*u.University))
	}
	if u.Role != nil {
		add("role", string(*u.Role))
	}
	if u.CompanyVerified != nil {
		add("company_verified", *u.CompanyVerified)
	}
	if u.ProfileImageURL != nil {
		add("profile_image_url", nullIfEmpty(*u.ProfileImageURL))
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE profiles SET `+set+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]profile.Profile, error) {
	if len(ids) == 0 {
		return []profile.Profile{}, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, role, first_name, last_name, university, company_verified, profile_image_url, created_at
FROM profiles WHERE id = ANY($1)
`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
