package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lumeboard/feedback-service/internal/admin/entity"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// AdminRepo provides data access for the admin_users table using sqlx.
type AdminRepo struct {
	db *sqlx.DB
}

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

// EnsureTable creates the admin_users table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *AdminRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE EXTENSION IF NOT EXISTS citext;
CREATE TABLE IF NOT EXISTS admin_users (
  id BIGSERIAL PRIMARY KEY,
  email CITEXT UNIQUE NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new admin row and fills in the assigned id and timestamp.
// A unique-violation on email maps to ErrDuplicateEmail.
func (r *AdminRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO admin_users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, q, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByEmail returns an admin matched by email (case-insensitive via citext),
// or nil when absent.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM admin_users WHERE email=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetByID returns an admin by id, or nil when absent.
func (r *AdminRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM admin_users WHERE id=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Count returns the number of admin accounts. The bootstrap predicate is
// computed from this at call time, never cached.
func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(id) FROM admin_users`); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes an admin row and reports whether it existed.
func (r *AdminRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
