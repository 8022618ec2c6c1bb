package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/models"
)

func newTestFeedbackRepo(t *testing.T) (*feedbackRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &feedbackRepository{db: db, logger: logger.Nop()}, mock
}

func strPtr(s string) *string { return &s }

func TestCreateFeedback_Success(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("INSERT INTO feedback \\(title,content,username\\) VALUES \\(\\$1,\\$2,\\$3\\) RETURNING id").
		WithArgs("Hello", "World", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	created, err := repo.CreateFeedback(context.Background(), models.Feedback{Title: "Hello", Content: "World", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, models.Feedback{ID: 7, Title: "Hello", Content: "World", Username: "alice"}, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeedback_UnknownUser(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("INSERT INTO feedback").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	_, err := repo.CreateFeedback(context.Background(), models.Feedback{Title: "t", Content: "c", Username: "ghost"})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
}

func TestFindFeedbackByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestFeedbackRepo(t)
		mock.ExpectQuery("SELECT id, title, content, username FROM feedback WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(feedbackColumns).AddRow(3, "t", "c", "alice"))

		f, err := repo.FindFeedbackByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "alice", f.Username)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestFeedbackRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM feedback").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindFeedbackByID(context.Background(), 3)
		assert.ErrorIs(t, err, ErrFeedbackNotFound)
	})
}

func TestListFeedbackByUsername(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM feedback WHERE username = \\$1 ORDER BY id ASC").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(feedbackColumns).
			AddRow(1, "first", "a", "alice").
			AddRow(4, "second", "b", "alice"))

	list, err := repo.ListFeedbackByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(4), list[1].ID)
}

func TestListFeedbackByUsername_Empty(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM feedback").
		WillReturnRows(sqlmock.NewRows(feedbackColumns))

	list, err := repo.ListFeedbackByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListFeedbackByUsername_RowError(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM feedback").
		WillReturnRows(sqlmock.NewRows(feedbackColumns).
			AddRow(1, "first", "a", "alice").
			RowError(0, errors.New("broken row")))

	_, err := repo.ListFeedbackByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestUpdateFeedback_TitleOnly(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("UPDATE feedback SET title = \\$1 WHERE id = \\$2 RETURNING id, title, content, username").
		WithArgs("new title", int64(5)).
		WillReturnRows(sqlmock.NewRows(feedbackColumns).AddRow(5, "new title", "old content", "alice"))

	f, err := repo.UpdateFeedback(context.Background(), models.FeedbackUpdate{ID: 5, Title: strPtr("new title")})
	require.NoError(t, err)
	assert.Equal(t, "new title", f.Title)
	assert.Equal(t, "old content", f.Content)
}

func TestUpdateFeedback_EmptyUpdateReadsRow(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM feedback WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(feedbackColumns).AddRow(5, "t", "c", "alice"))

	f, err := repo.UpdateFeedback(context.Background(), models.FeedbackUpdate{ID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFeedback_NotFound(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("UPDATE feedback").WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateFeedback(context.Background(), models.FeedbackUpdate{ID: 9, Content: strPtr("x")})
	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}

func TestDeleteFeedback(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectExec("DELETE FROM feedback WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM feedback WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteFeedback(context.Background(), 2))
	assert.ErrorIs(t, repo.DeleteFeedback(context.Background(), 2), ErrFeedbackNotFound)
}

func TestCountFeedbackByUsername(t *testing.T) {
	repo, mock := newTestFeedbackRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM feedback WHERE username = \\$1").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountFeedbackByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
