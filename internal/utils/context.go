// Package utils provides small helpers shared by the HTTP layer of the
// feedback site: typed context keys, HTML response writing and id
// generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UsernameCtxKey is the key under which the session identity of the
// current request is stored.
var UsernameCtxKey = contextKey("username")

// WithUsername returns a copy of ctx carrying the session identity.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameCtxKey, username)
}

// GetUsernameFromContext retrieves the session identity from the context.
//
// Returns ok == false for an anonymous request, that is when the value is
// missing, has an unexpected type or is empty.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok && username != ""
}
