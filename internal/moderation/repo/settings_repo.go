package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/lumeboard/feedback-service/internal/moderation/entity"
)

// SettingsRepo provides data access for the moderation_settings table using sqlx.
type SettingsRepo struct {
	db *sqlx.DB
}

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// EnsureTable creates the moderation_settings table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *SettingsRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS moderation_settings (
  id BIGSERIAL PRIMARY KEY,
  auto_approve_enabled BOOLEAN NOT NULL DEFAULT false,
  manual_review_rating_threshold INT NOT NULL DEFAULT 6,
  CONSTRAINT manual_review_threshold_check CHECK (manual_review_rating_threshold BETWEEN 1 AND 10)
);`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// First returns the authoritative settings row (lowest id), or nil when the
// table is empty.
func (r *SettingsRepo) First(ctx context.Context) (*entity.Settings, error) {
	const q = `SELECT id, auto_approve_enabled, manual_review_rating_threshold
	  FROM moderation_settings ORDER BY id ASC LIMIT 1`
	var row entity.Settings
	if err := r.db.GetContext(ctx, &row, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Insert persists a new settings row and fills in the assigned id.
func (r *SettingsRepo) Insert(ctx context.Context, s *entity.Settings) error {
	const q = `INSERT INTO moderation_settings (auto_approve_enabled, manual_review_rating_threshold)
	  VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowxContext(ctx, q, s.AutoApproveEnabled, s.ManualReviewRatingThreshold).Scan(&s.ID)
}

// Update overwrites both policy fields of the given row and reports how many
// rows were touched.
func (r *SettingsRepo) Update(ctx context.Context, s *entity.Settings) (int64, error) {
	const q = `UPDATE moderation_settings SET auto_approve_enabled=$2, manual_review_rating_threshold=$3 WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, s.ID, s.AutoApproveEnabled, s.ManualReviewRatingThreshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
