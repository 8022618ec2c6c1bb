package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/store"
	"github.com/MKhiriev/go-feedback/models"
)

// authService is the concrete implementation of AuthService.
// It hashes passwords with a PasswordHasher and persists accounts through a
// UserRepository, running each registration in a single transaction.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// transactor scopes the existence checks and the insert of a
	// registration to one transaction.
	transactor store.Transactor

	// hasher hashes raw passwords on registration and verifies them on login.
	hasher PasswordHasher

	// dummyHash is compared against when the username is unknown so that a
	// failed login takes the same time either way.
	dummyHash     string
	dummyHashOnce sync.Once

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use.
func NewAuthService(userRepository store.UserRepository, transactor store.Transactor, hasher PasswordHasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		transactor:     transactor,
		hasher:         hasher,
		logger:         logger,
	}
}

// Register creates a new user account from a validated form.
//
// The raw password is hashed before anything is written. Inside one
// transaction the username and email are checked for existing use and the
// user row is inserted.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if the username or password is empty.
//   - *DuplicateIdentityError naming the fields already in use; a unique
//     violation raced past the checks is mapped the same way.
//   - A wrapped storage error for anything else.
func (a *authService) Register(ctx context.Context, form models.RegisterForm) (models.User, error) {
	log := logger.FromContext(ctx)

	if form.Username == "" || form.Password == "" {
		log.Error().Str("username", form.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := a.hasher.Hash(form.Password)
	if err != nil {
		log.Err(err).Str("username", form.Username).Msg("password hashing failed")
		return models.User{}, err
	}

	user := models.User{
		Username:  form.Username,
		Password:  hash,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}

	var created models.User
	err = a.transactor.WithTx(ctx, func(ctx context.Context) error {
		duplicated := make([]string, 0, 2)

		usernameTaken, err := a.userRepository.UsernameExists(ctx, user.Username)
		if err != nil {
			return err
		}
		if usernameTaken {
			duplicated = append(duplicated, models.FieldUsername)
		}

		emailTaken, err := a.userRepository.EmailExists(ctx, user.Email)
		if err != nil {
			return err
		}
		if emailTaken {
			duplicated = append(duplicated, models.FieldEmail)
		}

		if len(duplicated) > 0 {
			return &DuplicateIdentityError{Fields: duplicated}
		}

		created, err = a.userRepository.CreateUser(ctx, user)
		return err
	})

	if err != nil {
		err = duplicateFromStore(err)
		if errors.Is(err, ErrDuplicateIdentity) {
			log.Info().Err(err).Str("username", user.Username).Msg("registration rejected")
			return models.User{}, err
		}

		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Authenticate returns the user whose username and password match.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		_ = a.hasher.Compare(a.getDummyHash(), password)
		log.Info().Str("username", username).Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = a.hasher.Compare(user.Password, password); err != nil {
		// a bare ErrInvalidCredentials is a plain mismatch
		if err != ErrInvalidCredentials {
			log.Err(err).Str("username", username).Msg("stored password hash is unusable")
		}
		log.Info().Str("username", username).Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	}

	log.Info().Str("username", username).Msg("user authenticated")
	return user, nil
}

func (a *authService) getDummyHash() string {
	a.dummyHashOnce.Do(func() {
		hash, err := a.hasher.Hash("dummy-password-for-timing")
		if err == nil {
			a.dummyHash = hash
		}
	})
	return a.dummyHash
}

// duplicateFromStore maps store unique violations to *DuplicateIdentityError.
func duplicateFromStore(err error) error {
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return &DuplicateIdentityError{Fields: []string{models.FieldUsername}}
	case errors.Is(err, store.ErrEmailTaken):
		return &DuplicateIdentityError{Fields: []string{models.FieldEmail}}
	case errors.Is(err, store.ErrDuplicateKey):
		return &DuplicateIdentityError{}
	default:
		return err
	}
}
