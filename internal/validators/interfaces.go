// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the forms submitted to the feedback site.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values.
//     Supports optional field-level scoping for targeted validation.
//   - FormSpec: ordered field descriptions (rules, messages, sanitizing)
//     evaluated one field at a time with go-playground/validator.
//   - FieldErrors: the per-field messages shown next to form inputs.
//
// Handlers validate before calling any service, so a rejected form never
// reaches the store.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
