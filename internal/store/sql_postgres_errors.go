package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names declared in migrations/postgres.
const (
	usersPrimaryKey = "users_pkey"
	usersEmailKey   = "users_email_key"
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code and constraint name returned by the pgx
// driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. It attempts to unwrap err as a
// *pgconn.PgError and delegates to [ClassifyPgError]. If err is nil or is not
// a PostgreSQL driver error, err is returned unchanged.
func (c *PostgresErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel := ClassifyPgError(pgErr); sentinel != nil {
			return wrap(sentinel, err)
		}
	}

	return err
}

// ClassifyPgError maps a *pgconn.PgError to a store sentinel based on the
// PostgreSQL error code and, for unique violations, the constraint name.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
// Returns nil for codes without a sentinel.
func ClassifyPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	// Class 23: integrity constraint violations
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case usersPrimaryKey:
			return ErrUsernameTaken
		case usersEmailKey:
			return ErrEmailTaken
		default:
			return ErrDuplicateKey
		}
	case pgerrcode.ForeignKeyViolation:
		return ErrForeignKeyViolation
	}

	return nil
}
