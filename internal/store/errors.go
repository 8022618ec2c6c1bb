package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user row matches the requested
	// username.
	ErrUserNotFound = errors.New("user was not found")

	// ErrFeedbackNotFound is returned when no feedback row matches the
	// requested id.
	ErrFeedbackNotFound = errors.New("feedback was not found")

	// ErrUsernameTaken is returned when an insert violates the primary key
	// of the users table.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when an insert violates the unique email
	// constraint of the users table.
	ErrEmailTaken = errors.New("email already exists")

	// ErrDuplicateKey is returned for any other unique violation.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrForeignKeyViolation is returned when a row references a user that
	// does not exist.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDSN is returned when the configured DSN names neither
	// PostgreSQL nor SQLite.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)
