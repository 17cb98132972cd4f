package feedback

import (
	"context"
	"errors"

	"github.com/lumeboard/feedback-service/internal/feedback/entity"
	"github.com/lumeboard/feedback-service/internal/moderation"
	mentity "github.com/lumeboard/feedback-service/internal/moderation/entity"
)

var ErrNotFound = errors.New("feedback not found")

// Store is the persistence surface the service needs. Lookups return nil
// when the row is absent.
type Store interface {
	Create(ctx context.Context, f *entity.Feedback) error
	GetByID(ctx context.Context, id int64) (*entity.Feedback, error)
	List(ctx context.Context, approvedOnly bool) ([]entity.Feedback, error)
	SetApproved(ctx context.Context, id int64, approved bool) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SettingsProvider resolves the current moderation policy.
type SettingsProvider interface {
	GetOrCreate(ctx context.Context) (*mentity.Settings, error)
}

// Service orchestrates feedback lifecycle and applies the moderation decision
// on creation.
type Service struct {
	store    Store
	settings SettingsProvider
}

func NewService(store Store, settings SettingsProvider) *Service {
	return &Service{store: store, settings: settings}
}

// CreateInput carries an already-validated public submission.
type CreateInput struct {
	Type    string
	Rating  int
	Text    string
	Name    string
	Contact string
	Source  *string
}

// Create persists a submission with its approval flag computed from the
// current moderation policy.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Feedback, error) {
	st, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	f := &entity.Feedback{
		Type:       in.Type,
		Rating:     in.Rating,
		Text:       in.Text,
		Name:       in.Name,
		Contact:    in.Contact,
		Source:     in.Source,
		IsApproved: moderation.DecideApproval(in.Rating, *st),
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns records newest-first; approvedOnly selects the public view.
func (s *Service) List(ctx context.Context, approvedOnly bool) ([]entity.Feedback, error) {
	return s.store.List(ctx, approvedOnly)
}

// GetByID returns a single record or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*entity.Feedback, error) {
	f, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	return f, nil
}

// Approve marks a record approved. Re-approving an already-approved record is
// a no-op success.
func (s *Service) Approve(ctx context.Context, id int64) (*entity.Feedback, error) {
	ok, err := s.store.SetApproved(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes a record or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
