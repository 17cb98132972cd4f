package moderation

import (
	"context"
	"errors"

	"github.com/lumeboard/feedback-service/internal/moderation/entity"
)

// DefaultManualReviewRatingThreshold is applied when the settings row is
// lazily created on first access.
const DefaultManualReviewRatingThreshold = 6

var ErrNotFound = errors.New("not found")

// Store is the persistence surface the service needs. First returns nil when
// no row exists yet.
type Store interface {
	First(ctx context.Context) (*entity.Settings, error)
	Insert(ctx context.Context, s *entity.Settings) error
	Update(ctx context.Context, s *entity.Settings) (int64, error)
}

// Service owns the moderation policy lifecycle.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetOrCreate returns the singleton settings row, creating it with defaults
// (auto-approve off, threshold 6) on first access. Concurrent first reads may
// briefly insert extra rows; First always resolves to the lowest id, so the
// store converges on a single authoritative row.
func (s *Service) GetOrCreate(ctx context.Context) (*entity.Settings, error) {
	st, err := s.store.First(ctx)
	if err != nil {
		return nil, err
	}
	if st != nil {
		return st, nil
	}
	st = &entity.Settings{
		AutoApproveEnabled:          false,
		ManualReviewRatingThreshold: DefaultManualReviewRatingThreshold,
	}
	if err := s.store.Insert(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Update overwrites the policy. Both fields are always supplied together;
// the threshold range is validated at the transport layer.
func (s *Service) Update(ctx context.Context, enabled bool, threshold int) (*entity.Settings, error) {
	st, err := s.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	st.AutoApproveEnabled = enabled
	st.ManualReviewRatingThreshold = threshold
	rows, err := s.store.Update(ctx, st)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// row vanished between read and write; settings are never deleted so
		// this only happens if the store is being reset underneath us
		return nil, ErrNotFound
	}
	return st, nil
}

// DecideApproval maps a submitted rating and the current policy to the
// approval flag stored on a new feedback record. The comparison is a strict
// greater-than: a rating exactly at the threshold still requires manual
// review.
func DecideApproval(rating int, s entity.Settings) bool {
	return s.AutoApproveEnabled && rating > s.ManualReviewRatingThreshold
}
