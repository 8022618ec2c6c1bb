package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation, lookup and deletion against the "users"
// table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions, and run on
// the transaction carried by ctx when there is one.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts a new user row and returns it.
//
// Error handling:
//   - primary key violation → [ErrUsernameTaken].
//   - unique email violation → [ErrEmailTaken].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, wrap(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		err = r.db.classify(err)
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrDuplicateKey) {
			log.Warn().Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("duplicate user")
			return models.User{}, err
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, wrap(ErrExecutingStatement, err)
	}

	log.Info().Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("user created")
	return user, nil
}

// FindUserByUsername returns the user with the given username or
// [ErrUserNotFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error building query")
		return models.User{}, wrap(ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).
		Scan(&user.Username, &user.Password, &user.Email, &user.FirstName, &user.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Str("func", "*userRepository.FindUserByUsername").Str("username", username).Msg("user not found")
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error scanning user")
		return models.User{}, wrap(ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *userRepository) exists(ctx context.Context, column, value string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountUsersQuery(r.db.builder, column, value)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.exists").Msg("error building query")
		return false, wrap(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.exists").Str("column", column).Msg("error counting users")
		return false, wrap(ErrExecutingQuery, err)
	}

	return count > 0, nil
}

// DeleteUser removes the user row; the database cascades the delete to the
// user's feedback. Returns [ErrUserNotFound] when nothing was deleted.
func (r *userRepository) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error building query")
		return wrap(ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return wrap(ErrExecutingStatement, r.db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrap(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	log.Info().Str("func", "*userRepository.DeleteUser").Str("username", username).Msg("user deleted")
	return nil
}
