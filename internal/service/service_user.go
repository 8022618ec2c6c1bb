package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/store"
	"github.com/MKhiriev/go-feedback/models"
)

type userService struct {
	userRepository     store.UserRepository
	feedbackRepository store.FeedbackRepository
	transactor         store.Transactor

	logger *logger.Logger
}

func NewUserService(storages *store.Storages, logger *logger.Logger) UserService {
	return &userService{
		userRepository:     storages.UserRepository,
		feedbackRepository: storages.FeedbackRepository,
		transactor:         storages.Transactor,
		logger:             logger,
	}
}

// Get returns the account of username to the user themselves.
func (s *userService) Get(ctx context.Context, identity, username string) (models.User, error) {
	if !CanView(identity, username) {
		logger.FromContext(ctx).Warn().Str("identity", identity).Str("target", username).Msg("user access denied")
		return models.User{}, ErrUnauthorized
	}

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, s.translate(ctx, err, "user lookup failed")
	}

	return user, nil
}

// Profile returns the account of username together with its feedback in
// creation order.
func (s *userService) Profile(ctx context.Context, identity, username string) (models.Profile, error) {
	user, err := s.Get(ctx, identity, username)
	if err != nil {
		return models.Profile{}, err
	}

	feedback, err := s.feedbackRepository.ListFeedbackByUsername(ctx, username)
	if err != nil {
		return models.Profile{}, s.translate(ctx, err, "feedback listing failed")
	}

	return models.Profile{User: user, Feedback: feedback}, nil
}

// DeleteAccount deletes the user row of username in one transaction; the
// user's feedback goes with it.
func (s *userService) DeleteAccount(ctx context.Context, identity, username string) error {
	log := logger.FromContext(ctx)

	if !CanView(identity, username) {
		log.Warn().Str("identity", identity).Str("target", username).Msg("account deletion denied")
		return ErrUnauthorized
	}

	err := s.transactor.WithTx(ctx, func(ctx context.Context) error {
		return s.userRepository.DeleteUser(ctx, username)
	})
	if err != nil {
		return s.translate(ctx, err, "account deletion failed")
	}

	log.Info().Str("username", username).Msg("account deleted")
	return nil
}

func (s *userService) translate(ctx context.Context, err error, msg string) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrNotFound
	}

	logger.FromContext(ctx).Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
