package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumni-labs/bolsa/pkg/auth"
	"github.com/alumni-labs/bolsa/pkg/profile"
)

// AccountRepository implements auth.AccountRepository backed by PostgreSQL (pgx).
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) (*AccountRepository, error) {
	repo := &AccountRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *AccountRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS accounts (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	email_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *AccountRepository) Create(ctx context.Context, acc auth.Account) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO accounts (id, email, password_hash, role, email_confirmed, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, acc.ID, strings.ToLower(acc.Email), acc.PasswordHash, string(acc.Role), acc.EmailConfirmed, acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, role, email_confirmed, created_at
FROM accounts WHERE email = $1
`, strings.ToLower(email))
	return scanAccount(row)
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, role, email_confirmed, created_at
FROM accounts WHERE id = $1
`, id)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (auth.Account, error) {
	var acc auth.Account
	var role string
	var createdAt time.Time
	if err := row.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &role, &acc.EmailConfirmed, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Account{}, auth.ErrNotFound
		}
		return auth.Account{}, err
	}
	acc.Role = profile.Role(role)
	acc.CreatedAt = createdAt.UTC()
	return acc, nil
}

func (r *AccountRepository) ConfirmEmail(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE accounts SET email_confirmed = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE accounts SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) SetRole(ctx context.Context, id uuid.UUID, role profile.Role) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE accounts SET role = $2 WHERE id = $1`, id, string(role))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context, limit int) ([]auth.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, email, password_hash, role, email_confirmed, created_at
FROM accounts ORDER BY created_at DESC LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []auth.Account
	for rows.Next() {
		var acc auth.Account
		var role string
		var createdAt time.Time
		if err := rows.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &role, &acc.EmailConfirmed, &createdAt); err != nil {
			return nil, err
		}
		acc.Role = profile.Role(role)
		acc.CreatedAt = createdAt.UTC()
		res = append(res, acc)
	}
	return res, rows.Err()
}
