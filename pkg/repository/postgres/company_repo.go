package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumni-labs/bolsa/pkg/company"
)

const companyColumns = `id, owner_id, name, logo_url, website, description,
	email, legal_name, industry, hr_contact_name, contact_phone, verified, suspended`

// CompanyRepository stores company rows.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) (*CompanyRepository, error) {
	r := &CompanyRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CompanyRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS companies (
	id UUID PRIMARY KEY,
	owner_id UUID,
	name TEXT NOT NULL,
	logo_url TEXT,
	website TEXT,
	description TEXT,
	email TEXT,
	legal_name TEXT,
	industry TEXT,
	hr_contact_name TEXT,
	contact_phone TEXT,
	verified BOOLEAN NOT NULL DEFAULT FALSE,
	suspended BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_companies_owner ON companies(owner_id);
`)
	return err
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO companies (`+companyColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, c.ID, c.OwnerID, c.Name, nullIfEmpty(c.LogoURL), nullIfEmpty(c.Website), nullIfEmpty(c.Description),
		nullIfEmpty(c.Email), nullIfEmpty(c.LegalName), nullIfEmpty(c.Industry),
		nullIfEmpty(c.HRContactName), nullIfEmpty(c.ContactPhone), c.Verified, c.Suspended)
	return err
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	var logo, website, desc, email, legal, industry, hr, phone *string
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &logo, &website, &desc,
		&email, &legal, &industry, &hr, &phone, &c.Verified, &c.Suspended); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	c.LogoURL = deref(logo)
	c.Website = deref(website)
	c.Description = deref(desc)
	c.Email = deref(email)
	c.LegalName = deref(legal)
	c.Industry = deref(industry)
	c.HRContactName = deref(hr)
	c.ContactPhone = deref(phone)
	return c, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *CompanyRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (company.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE owner_id = $1 LIMIT 1`, ownerID)
	return scanCompany(row)
}

func (r *CompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

func (r *CompanyRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]company.Company, error) {
	if len(ids) == 0 {
		return []company.Company{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

func collectCompanies(rows pgx.Rows) ([]company.Company, error) {
	defer rows.Close()
	var res []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *CompanyRepository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM companies WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CompanyRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.setFlag(ctx, id, "verified", verified)
}

func (r *CompanyRepository) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	return r.setFlag(ctx, id, "suspended", suspended)
}

func (r *CompanyRepository) setFlag(ctx context.Context, id uuid.UUID, col string, v bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE companies SET `+col+` = $2 WHERE id = $1`, id, v)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = ANY($1)`, ids)
	return err
}
