package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// FieldErrors maps a form field name to the messages explaining why its
// value was rejected. A non-empty FieldErrors is returned as an error by
// [FormValidator.Validate].
type FieldErrors map[string][]string

// Error joins all messages ordered by field name.
func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(e))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e[name], "; "))
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// Add appends msg to the messages of field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// First returns the first message of field or "".
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
