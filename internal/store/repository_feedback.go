package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/models"
)

// feedbackRepository is the SQL implementation of [FeedbackRepository].
type feedbackRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewFeedbackRepository(db *DB, logger *logger.Logger) FeedbackRepository {
	logger.Debug().Msg("creating feedback repository")
	return &feedbackRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFeedback inserts feedback and returns it with the id assigned by
// the database. A username without a user row yields [ErrForeignKeyViolation].
func (r *feedbackRepository) CreateFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertFeedbackQuery(r.db.builder, feedback)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.CreateFeedback").Msg("error building query")
		return models.Feedback{}, wrap(ErrBuildingSQLQuery, err)
	}

	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&feedback.ID); err != nil {
		err = r.db.classify(err)
		log.Err(err).Str("func", "*feedbackRepository.CreateFeedback").Msg("error inserting feedback")
		if errors.Is(err, ErrForeignKeyViolation) {
			return models.Feedback{}, err
		}
		return models.Feedback{}, wrap(ErrExecutingStatement, err)
	}

	log.Info().
		Str("func", "*feedbackRepository.CreateFeedback").
		Int64("feedback_id", feedback.ID).
		Str("username", feedback.Username).
		Msg("feedback created")

	return feedback, nil
}

// FindFeedbackByID returns the feedback with id or [ErrFeedbackNotFound].
func (r *feedbackRepository) FindFeedbackByID(ctx context.Context, id int64) (models.Feedback, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFeedbackByIDQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.FindFeedbackByID").Msg("error building query")
		return models.Feedback{}, wrap(ErrBuildingSQLQuery, err)
	}

	var feedback models.Feedback
	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&feedback.ID, &feedback.Title, &feedback.Content, &feedback.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Feedback{}, ErrFeedbackNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.FindFeedbackByID").Int64("feedback_id", id).Msg("error scanning feedback")
		return models.Feedback{}, wrap(ErrScanningRow, err)
	}

	return feedback, nil
}

func (r *feedbackRepository) ListFeedbackByUsername(ctx context.Context, username string) ([]models.Feedback, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFeedbackByUsernameQuery(r.db.builder, username)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.ListFeedbackByUsername").Msg("error building query")
		return nil, wrap(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.ListFeedbackByUsername").Msg("error executing query")
		return nil, wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	feedback := make([]models.Feedback, 0)
	for rows.Next() {
		var f models.Feedback
		if err = rows.Scan(&f.ID, &f.Title, &f.Content, &f.Username); err != nil {
			log.Err(err).Str("func", "*feedbackRepository.ListFeedbackByUsername").Msg("error scanning row")
			return nil, wrap(ErrScanningRows, err)
		}
		feedback = append(feedback, f)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*feedbackRepository.ListFeedbackByUsername").Msg("error iterating rows")
		return nil, wrap(ErrScanningRows, err)
	}

	return feedback, nil
}

// UpdateFeedback applies the non-nil fields of update and returns the
// stored row. An empty update only reads the row back.
func (r *feedbackRepository) UpdateFeedback(ctx context.Context, update models.FeedbackUpdate) (models.Feedback, error) {
	if update.IsEmpty() {
		return r.FindFeedbackByID(ctx, update.ID)
	}

	log := logger.FromContext(ctx)

	query, args, err := buildUpdateFeedbackQuery(r.db.builder, update)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.UpdateFeedback").Msg("error building query")
		return models.Feedback{}, wrap(ErrBuildingSQLQuery, err)
	}

	var feedback models.Feedback
	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&feedback.ID, &feedback.Title, &feedback.Content, &feedback.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Feedback{}, ErrFeedbackNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.UpdateFeedback").Int64("feedback_id", update.ID).Msg("error updating feedback")
		return models.Feedback{}, wrap(ErrExecutingStatement, err)
	}

	log.Info().Str("func", "*feedbackRepository.UpdateFeedback").Int64("feedback_id", feedback.ID).Msg("feedback updated")
	return feedback, nil
}

func (r *feedbackRepository) DeleteFeedback(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteFeedbackQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.DeleteFeedback").Msg("error building query")
		return wrap(ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.DeleteFeedback").Msg("error deleting feedback")
		return wrap(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrap(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFeedbackNotFound
	}

	log.Info().Str("func", "*feedbackRepository.DeleteFeedback").Int64("feedback_id", id).Msg("feedback deleted")
	return nil
}

// CountFeedbackByUsername returns how many feedback rows reference username.
func (r *feedbackRepository) CountFeedbackByUsername(ctx context.Context, username string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountFeedbackQuery(r.db.builder, username)
	if err != nil {
		return 0, wrap(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*feedbackRepository.CountFeedbackByUsername").Msg("error counting feedback")
		return 0, wrap(ErrExecutingQuery, err)
	}

	return count, nil
}
