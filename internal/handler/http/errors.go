// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the handlers themselves. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidFeedbackID is returned when the {feedbackID} path segment is
	// not a positive integer. It is answered like an unknown id.
	ErrInvalidFeedbackID = errors.New("invalid feedback id")

	// ErrTooManyAttempts is returned while the client is locked out of
	// signing in.
	ErrTooManyAttempts = errors.New("too many failed sign-in attempts")
)
