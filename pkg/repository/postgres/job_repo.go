package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumni-labs/bolsa/pkg/job"
)

const jobColumns = `id, title, description, area, location, experience_min,
	salary_min, salary_max, modality, company_id, created_at, is_active, views`

// JobRepository stores job rows.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	area TEXT NOT NULL,
	location TEXT NOT NULL,
	experience_min INTEGER NOT NULL DEFAULT 0,
	salary_min INTEGER,
	salary_max INTEGER,
	modality TEXT NOT NULL,
	company_id UUID NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id);
CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at DESC);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (uuid.UUID, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	var salaryMin, salaryMax *int
	if j.Salary != nil {
		salaryMin, salaryMax = &j.Salary.Min, &j.Salary.Max
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, j.ID, j.Title, j.Description, j.Area, j.Location, j.ExperienceMin,
		salaryMin, salaryMax, string(j.Modality), j.CompanyID, j.CreatedAt, j.IsActive, j.Views)
	if err != nil {
		return uuid.Nil, err
	}
	return j.ID, nil
}

func (r *JobRepository) Update(ctx context.Context, id uuid.UUID, u job.Update) error {
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
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Area != nil {
		add("area", *u.Area)
	}
	if u.Location != nil {
		add("location", *u.Location)
	}
	if u.ExperienceMin != nil {
		add("experience_min", *u.ExperienceMin)
	}
	if u.SalaryMin != nil {
		add("salary_min", *u.SalaryMin)
	}
	if u.SalaryMax != nil {
		add("salary_max", *u.SalaryMax)
	}
	if u.Modality != nil {
		add("modality", string(*u.Modality))
	}
	if u.IsActive != nil {
		add("is_active", *u.IsActive)
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE jobs SET `+set+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var salaryMin, salaryMax *int
	var modality string
	var created time.Time
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Area, &j.Location, &j.ExperienceMin,
		&salaryMin, &salaryMax, &modality, &j.CompanyID, &created, &j.IsActive, &j.Views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	if salaryMin != nil && salaryMax != nil {
		j.Salary = &job.SalaryRange{Min: *salaryMin, Max: *salaryMax}
	}
	j.Modality = job.Modality(modality)
	j.CreatedAt = created.UTC()
	return j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) ListActive(ctx context.Context) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE is_active ORDER BY created_at DESC
`)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]job.Job, error) {
	if len(ids) == 0 {
		return []job.Job{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC
`, companyID)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]job.Job, error) {
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func (r *JobRepository) ListIDsByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(companyIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id FROM jobs WHERE company_id = ANY($1)`, companyIDs)
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

func (r *JobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *JobRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE jobs SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) DeleteByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) error {
	if len(companyIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE company_id = ANY($1)`, companyIDs)
	return err
}
