package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/models"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	s, err := NewStorages(context.Background(), config.DB{DSN: "sqlite://:memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewConnect_UnsupportedDSN(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{DSN: "mysql://root@localhost/db"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestSQLite_DeleteUserCascadesToFeedback(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.UserRepository.CreateUser(ctx, testUser)
	require.NoError(t, err)
	bob := models.User{Username: "bob", Password: "x", Email: "bob@example.com", FirstName: "Bob", LastName: "B"}
	_, err = s.UserRepository.CreateUser(ctx, bob)
	require.NoError(t, err)

	for _, title := range []string{"one", "two"} {
		_, err = s.FeedbackRepository.CreateFeedback(ctx, models.Feedback{Title: title, Content: "c", Username: "alice"})
		require.NoError(t, err)
	}
	_, err = s.FeedbackRepository.CreateFeedback(ctx, models.Feedback{Title: "bob's", Content: "c", Username: "bob"})
	require.NoError(t, err)

	err = s.Transactor.WithTx(ctx, func(ctx context.Context) error {
		return s.UserRepository.DeleteUser(ctx, "alice")
	})
	require.NoError(t, err)

	n, err := s.FeedbackRepository.CountFeedbackByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.FeedbackRepository.CountFeedbackByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLite_DuplicatesAreClassified(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.UserRepository.CreateUser(ctx, testUser)
	require.NoError(t, err)

	sameName := testUser
	sameName.Email = "other@example.com"
	_, err = s.UserRepository.CreateUser(ctx, sameName)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	sameEmail := testUser
	sameEmail.Username = "alice2"
	_, err = s.UserRepository.CreateUser(ctx, sameEmail)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSQLite_FeedbackLifecycle(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.UserRepository.CreateUser(ctx, testUser)
	require.NoError(t, err)

	first, err := s.FeedbackRepository.CreateFeedback(ctx, models.Feedback{Title: "first", Content: "a", Username: "alice"})
	require.NoError(t, err)
	second, err := s.FeedbackRepository.CreateFeedback(ctx, models.Feedback{Title: "second", Content: "b", Username: "alice"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	content := "edited"
	updated, err := s.FeedbackRepository.UpdateFeedback(ctx, models.FeedbackUpdate{ID: first.ID, Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "first", updated.Title)
	assert.Equal(t, "edited", updated.Content)

	list, err := s.FeedbackRepository.ListFeedbackByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	require.NoError(t, s.FeedbackRepository.DeleteFeedback(ctx, second.ID))
	_, err = s.FeedbackRepository.FindFeedbackByID(ctx, second.ID)
	assert.ErrorIs(t, err, ErrFeedbackNotFound)

	_, err = s.FeedbackRepository.CreateFeedback(ctx, models.Feedback{Title: "t", Content: "c", Username: "ghost"})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
}

func TestSQLite_RollbackLeavesNoRows(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	err := s.Transactor.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.UserRepository.CreateUser(ctx, testUser); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	exists, err := s.UserRepository.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}
