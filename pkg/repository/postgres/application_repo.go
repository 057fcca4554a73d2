package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumni-labs/bolsa/pkg/application"
)

// ApplicationRepository stores applications. The (job_id, student_id) unique
// index is what makes the apply action idempotent; a violation surfaces as
// application.ErrDuplicate, never as a raw driver error.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL,
	student_id UUID NOT NULL,
	status TEXT NOT NULL DEFAULT 'Pending',
	applied_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, student_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_student ON applications(student_id);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id);
`)
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (id, job_id, student_id, status, applied_at)
VALUES ($1, $2, $3, $4, $5)
`, a.ID, a.JobID, a.StudentID, string(a.Status), a.AppliedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return application.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) HasApplied(ctx context.Context, jobID, studentID uuid.UUID) (bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT 1 FROM applications WHERE job_id = $1 AND student_id = $2
`, jobID, studentID)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, job_id, student_id, status, applied_at
FROM applications WHERE student_id = $1 ORDER BY applied_at DESC
`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []application.Application
	for rows.Next() {
		var a application.Application
		var status string
		var applied time.Time
		if err := rows.Scan(&a.ID, &a.JobID, &a.StudentID, &status, &applied); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		a.AppliedAt = applied.UTC()
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) CountByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT job_id, COUNT(*) FROM applications WHERE job_id = ANY($1) GROUP BY job_id
`, jobIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) error {
	if len(jobIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE job_id = ANY($1)`, jobIDs)
	return err
}

func (r *ApplicationRepository) DeleteByStudent(ctx context.Context, studentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE student_id = $1`, studentID)
	return err
}
