package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumeboard/feedback-service/internal/moderation/entity"
)

type fakeStore struct {
	rows   []*entity.Settings
	nextID int64
}

func (f *fakeStore) First(_ context.Context) (*entity.Settings, error) {
	if len(f.rows) == 0 {
		return nil, nil
	}
	lowest := f.rows[0]
	for _, r := range f.rows[1:] {
		if r.ID < lowest.ID {
			lowest = r
		}
	}
	cp := *lowest
	return &cp, nil
}

func (f *fakeStore) Insert(_ context.Context, s *entity.Settings) error {
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeStore) Update(_ context.Context, s *entity.Settings) (int64, error) {
	for _, r := range f.rows {
		if r.ID == s.ID {
			*r = *s
			return 1, nil
		}
	}
	return 0, nil
}

func TestDecideApprovalEnabled(t *testing.T) {
	for threshold := 1; threshold <= 10; threshold++ {
		s := entity.Settings{AutoApproveEnabled: true, ManualReviewRatingThreshold: threshold}
		for rating := 1; rating <= 10; rating++ {
			got := DecideApproval(rating, s)
			want := rating > threshold
			if got != want {
				t.Fatalf("rating=%d threshold=%d: got %v, want %v", rating, threshold, got, want)
			}
		}
	}
}

func TestDecideApprovalAtThresholdNeedsReview(t *testing.T) {
	s := entity.Settings{AutoApproveEnabled: true, ManualReviewRatingThreshold: 6}
	require.False(t, DecideApproval(6, s))
	require.True(t, DecideApproval(7, s))
}

func TestDecideApprovalDisabled(t *testing.T) {
	for threshold := 1; threshold <= 10; threshold++ {
		s := entity.Settings{AutoApproveEnabled: false, ManualReviewRatingThreshold: threshold}
		for rating := 1; rating <= 10; rating++ {
			if DecideApproval(rating, s) {
				t.Fatalf("rating=%d threshold=%d: approved with auto-approve disabled", rating, threshold)
			}
		}
	}
}

func TestGetOrCreateDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	st, err := svc.GetOrCreate(context.Background())
	require.NoError(t, err)
	require.False(t, st.AutoApproveEnabled)
	require.Equal(t, DefaultManualReviewRatingThreshold, st.ManualReviewRatingThreshold)
	require.Len(t, store.rows, 1)

	// second read returns the same row, no duplicate insert
	again, err := svc.GetOrCreate(context.Background())
	require.NoError(t, err)
	require.Equal(t, st.ID, again.ID)
	require.Len(t, store.rows, 1)
}

func TestGetOrCreateLowestIDWins(t *testing.T) {
	store := &fakeStore{
		rows: []*entity.Settings{
			{ID: 7, AutoApproveEnabled: true, ManualReviewRatingThreshold: 3},
			{ID: 2, AutoApproveEnabled: false, ManualReviewRatingThreshold: 9},
		},
		nextID: 7,
	}
	svc := NewService(store)

	st, err := svc.GetOrCreate(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), st.ID)
	require.Equal(t, 9, st.ManualReviewRatingThreshold)
}

func TestUpdatePersistsBothFields(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	st, err := svc.Update(context.Background(), true, 8)
	require.NoError(t, err)
	require.True(t, st.AutoApproveEnabled)
	require.Equal(t, 8, st.ManualReviewRatingThreshold)

	got, err := svc.GetOrCreate(context.Background())
	require.NoError(t, err)
	require.True(t, got.AutoApproveEnabled)
	require.Equal(t, 8, got.ManualReviewRatingThreshold)
}
