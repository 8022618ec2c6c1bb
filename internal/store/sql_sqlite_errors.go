package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite using the
// extended result codes of go-sqlite3. SQLite does not report constraint
// names, so the users table relies on its shape: the primary key is the
// username and the only UNIQUE column is the email.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintPrimaryKey:
		return wrap(ErrUsernameTaken, err)
	case sqlite3.ErrConstraintUnique:
		return wrap(ErrEmailTaken, err)
	case sqlite3.ErrConstraintForeignKey:
		return wrap(ErrForeignKeyViolation, err)
	}

	return err
}
