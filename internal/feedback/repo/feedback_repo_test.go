package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/lumeboard/feedback-service/internal/feedback/entity"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func feedbackColumns() []string {
	return []string{"id", "type", "rating", "text", "name", "contact", "is_approved", "created_at", "source"}
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO feedbacks").WillReturnResult(sqlmock.NewResult(0, 1))

	f := &entity.Feedback{Type: entity.TypeReview, Rating: 7, Text: "nice", Name: "N", Contact: "@n"}
	require.NoError(t, NewFeedbackRepo(db).Create(context.Background(), f))
	require.NotZero(t, f.ID)
	require.False(t, f.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFiltersApproved(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows(feedbackColumns()).
		AddRow(int64(2), "review", 8, "good", "A", "@a", true, time.Now(), nil)
	mock.ExpectQuery(`WHERE is_approved = true ORDER BY created_at DESC`).WillReturnRows(rows)

	got, err := NewFeedbackRepo(db).List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].IsApproved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllSkipsFilter(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows(feedbackColumns()).
		AddRow(int64(2), "review", 8, "good", "A", "@a", true, time.Now(), nil).
		AddRow(int64(1), "suggestion", 3, "meh", "B", "@b", false, time.Now().Add(-time.Hour), nil)
	mock.ExpectQuery(`FROM feedbacks ORDER BY created_at DESC`).WillReturnRows(rows)

	got, err := NewFeedbackRepo(db).List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM feedbacks WHERE id=").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(feedbackColumns()))

	got, err := NewFeedbackRepo(db).GetByID(context.Background(), 9)
	require.NoError(t, err)
	require.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetApprovedReportsExistence(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE feedbacks SET is_approved").
		WithArgs(int64(1), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE feedbacks SET is_approved").
		WithArgs(int64(2), true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewFeedbackRepo(db)
	ok, err := r.SetApproved(context.Background(), 1, true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.SetApproved(context.Background(), 2, true)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReportsExistence(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM feedbacks").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := NewFeedbackRepo(db).Delete(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
