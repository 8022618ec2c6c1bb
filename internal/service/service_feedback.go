package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/store"
	"github.com/MKhiriev/go-feedback/models"
)

// feedbackService guards and runs feedback changes. Anonymous sessions are
// rejected before any lookup. For an authenticated session an unknown id
// is ErrNotFound and feedback of another user is ErrUnauthorized.
type feedbackService struct {
	feedbackRepository store.FeedbackRepository
	transactor         store.Transactor

	logger *logger.Logger
}

func NewFeedbackService(storages *store.Storages, logger *logger.Logger) FeedbackService {
	return &feedbackService{
		feedbackRepository: storages.FeedbackRepository,
		transactor:         storages.Transactor,
		logger:             logger,
	}
}

// Add creates feedback owned by username.
func (s *feedbackService) Add(ctx context.Context, identity, username string, form models.FeedbackForm) (models.Feedback, error) {
	log := logger.FromContext(ctx)

	if !CanMutateFeedback(identity, username) {
		log.Warn().Str("identity", identity).Str("target", username).Msg("feedback creation denied")
		return models.Feedback{}, ErrUnauthorized
	}

	var created models.Feedback
	err := s.transactor.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.feedbackRepository.CreateFeedback(ctx, models.Feedback{
			Title:    form.Title,
			Content:  form.Content,
			Username: username,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrForeignKeyViolation) {
			return models.Feedback{}, ErrNotFound
		}
		log.Err(err).Str("username", username).Msg("feedback creation failed")
		return models.Feedback{}, fmt.Errorf("feedback creation failed: %w", err)
	}

	return created, nil
}

// Get returns feedback id to its owner.
func (s *feedbackService) Get(ctx context.Context, identity string, id int64) (models.Feedback, error) {
	if identity == "" {
		return models.Feedback{}, ErrUnauthorized
	}

	feedback, err := s.findOwned(ctx, identity, id)
	if err != nil {
		return models.Feedback{}, s.translate(ctx, err, id)
	}

	return feedback, nil
}

// Update applies update to feedback id. Nil fields keep the stored value.
func (s *feedbackService) Update(ctx context.Context, identity string, id int64, update models.FeedbackUpdate) (models.Feedback, error) {
	if identity == "" {
		return models.Feedback{}, ErrUnauthorized
	}
	update.ID = id

	var updated models.Feedback
	err := s.transactor.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.findOwned(ctx, identity, id); err != nil {
			return err
		}

		var err error
		updated, err = s.feedbackRepository.UpdateFeedback(ctx, update)
		return err
	})
	if err != nil {
		return models.Feedback{}, s.translate(ctx, err, id)
	}

	logger.FromContext(ctx).Info().Int64("feedback_id", id).Str("username", identity).Msg("feedback updated")
	return updated, nil
}

// Delete removes feedback id and returns the owner's username.
func (s *feedbackService) Delete(ctx context.Context, identity string, id int64) (string, error) {
	if identity == "" {
		return "", ErrUnauthorized
	}

	var owner string
	err := s.transactor.WithTx(ctx, func(ctx context.Context) error {
		feedback, err := s.findOwned(ctx, identity, id)
		if err != nil {
			return err
		}
		owner = feedback.Username

		return s.feedbackRepository.DeleteFeedback(ctx, id)
	})
	if err != nil {
		return "", s.translate(ctx, err, id)
	}

	logger.FromContext(ctx).Info().Int64("feedback_id", id).Str("username", owner).Msg("feedback deleted")
	return owner, nil
}

// findOwned loads feedback id and checks that identity owns it.
func (s *feedbackService) findOwned(ctx context.Context, identity string, id int64) (models.Feedback, error) {
	feedback, err := s.feedbackRepository.FindFeedbackByID(ctx, id)
	if err != nil {
		return models.Feedback{}, err
	}

	if !CanMutateFeedback(identity, feedback.Username) {
		logger.FromContext(ctx).Warn().
			Str("identity", identity).
			Int64("feedback_id", id).
			Msg("feedback access denied")
		return models.Feedback{}, ErrUnauthorized
	}

	return feedback, nil
}

func (s *feedbackService) translate(ctx context.Context, err error, id int64) error {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, store.ErrFeedbackNotFound):
		return ErrNotFound
	}

	logger.FromContext(ctx).Err(err).Int64("feedback_id", id).Msg("feedback operation failed")
	return fmt.Errorf("feedback operation failed: %w", err)
}
