package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// username and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized is returned when the session identity may not act on
	// the requested user or feedback.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the requested user or feedback does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrPasswordTooLong is returned by Register for passwords longer than
	// [MaxPasswordBytes]; bcrypt cannot hash them.
	ErrPasswordTooLong = errors.New("password too long")

	// ErrDuplicateIdentity is matched by every [*DuplicateIdentityError].
	ErrDuplicateIdentity = errors.New("duplicate identity")
)

// DuplicateIdentityError reports which identity fields of a registration
// are already in use. Fields holds models.FieldUsername and/or
// models.FieldEmail; it is empty when the store could not tell.
type DuplicateIdentityError struct {
	Fields []string
}

func (e *DuplicateIdentityError) Error() string {
	if len(e.Fields) == 0 {
		return ErrDuplicateIdentity.Error()
	}
	return ErrDuplicateIdentity.Error() + ": " + strings.Join(e.Fields, ", ")
}

// Is makes errors.Is(err, ErrDuplicateIdentity) true.
func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}

// Has reports whether field is among the duplicated fields.
func (e *DuplicateIdentityError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
