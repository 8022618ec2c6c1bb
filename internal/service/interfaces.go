package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-feedback/models"
)

// AuthService registers accounts and checks credentials.
type AuthService interface {
	Register(ctx context.Context, form models.RegisterForm) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
}

// UserService serves the account pages. Every method takes the session
// identity and fails with ErrUnauthorized before touching the store when
// the identity may not view username.
type UserService interface {
	Get(ctx context.Context, identity, username string) (models.User, error)
	Profile(ctx context.Context, identity, username string) (models.Profile, error)
	DeleteAccount(ctx context.Context, identity, username string) error
}

// FeedbackService manages feedback notes on behalf of the session identity.
type FeedbackService interface {
	Add(ctx context.Context, identity, username string, form models.FeedbackForm) (models.Feedback, error)
	Get(ctx context.Context, identity string, id int64) (models.Feedback, error)
	Update(ctx context.Context, identity string, id int64, update models.FeedbackUpdate) (models.Feedback, error)
	// Delete removes feedback id and returns its owner.
	Delete(ctx context.Context, identity string, id int64) (string, error)
}

// AppInfoService exposes build metadata for page footers.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// PasswordHasher hashes and verifies raw passwords.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}
