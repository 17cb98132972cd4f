package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lumeboard/feedback-service/internal/feedback/entity"
	"github.com/lumeboard/feedback-service/pkg/utilities"
)

// FeedbackRepo provides data access for the feedbacks table using sqlx.
type FeedbackRepo struct {
	db *sqlx.DB
}

func NewFeedbackRepo(db *sqlx.DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

// EnsureTable creates the feedbacks table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *FeedbackRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS feedbacks (
  id BIGINT PRIMARY KEY,
  type VARCHAR(20) NOT NULL,
  rating INT NOT NULL,
  text TEXT NOT NULL,
  name VARCHAR(60) NOT NULL,
  contact VARCHAR(50) NOT NULL,
  is_approved BOOLEAN NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  source VARCHAR(150),
  CONSTRAINT feedback_type_check CHECK (type IN ('review','suggestion')),
  CONSTRAINT rating_range_check CHECK (rating BETWEEN 1 AND 10)
);
CREATE INDEX IF NOT EXISTS idx_feedbacks_name ON feedbacks(name);
CREATE INDEX IF NOT EXISTS idx_feedbacks_is_approved ON feedbacks(is_approved);
CREATE INDEX IF NOT EXISTS idx_feedbacks_created_at ON feedbacks(created_at);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new feedback row, assigning the server-side id and
// creation timestamp on the entity.
func (r *FeedbackRepo) Create(ctx context.Context, f *entity.Feedback) error {
	f.ID = utilities.NewRecordID()
	f.CreatedAt = time.Now().UTC()
	const q = `INSERT INTO feedbacks (id, type, rating, text, name, contact, is_approved, created_at, source)
	  VALUES (:id, :type, :rating, :text, :name, :contact, :is_approved, :created_at, :source)`
	_, err := r.db.NamedExecContext(ctx, q, f)
	return err
}

// GetByID returns a feedback row by id, or nil when absent.
func (r *FeedbackRepo) GetByID(ctx context.Context, id int64) (*entity.Feedback, error) {
	const q = `SELECT id, type, rating, text, name, contact, is_approved, created_at, source
	  FROM feedbacks WHERE id=$1`
	var row entity.Feedback
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// List returns feedback rows newest-first. With approvedOnly it filters to
// approved records, which is the public-facing view.
func (r *FeedbackRepo) List(ctx context.Context, approvedOnly bool) ([]entity.Feedback, error) {
	q := `SELECT id, type, rating, text, name, contact, is_approved, created_at, source FROM feedbacks`
	if approvedOnly {
		q += ` WHERE is_approved = true`
	}
	q += ` ORDER BY created_at DESC`
	rows := []entity.Feedback{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetApproved writes the approval flag and reports whether the row exists.
func (r *FeedbackRepo) SetApproved(ctx context.Context, id int64, approved bool) (bool, error) {
	const q = `UPDATE feedbacks SET is_approved=$2 WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, id, approved)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Delete removes a feedback row and reports whether it existed.
func (r *FeedbackRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedbacks WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
