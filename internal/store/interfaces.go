package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-feedback/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// DeleteUser removes the user row. Feedback of the user is removed by
	// the ON DELETE CASCADE foreign key.
	DeleteUser(ctx context.Context, username string) error
}

// FeedbackRepository persists feedback notes.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error)
	FindFeedbackByID(ctx context.Context, id int64) (models.Feedback, error)
	// ListFeedbackByUsername returns the user's feedback ordered by id.
	ListFeedbackByUsername(ctx context.Context, username string) ([]models.Feedback, error)
	UpdateFeedback(ctx context.Context, update models.FeedbackUpdate) (models.Feedback, error)
	DeleteFeedback(ctx context.Context, id int64) error
	CountFeedbackByUsername(ctx context.Context, username string) (int64, error)
}

// Transactor runs fn inside a single database transaction. Repository calls
// made with the context passed to fn join that transaction. The transaction
// is committed only when fn returns nil and rolled back otherwise.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrorClassificator translates driver specific errors into store
// sentinels. Errors it does not recognise are returned unchanged.
type ErrorClassificator interface {
	Classify(err error) error
}
