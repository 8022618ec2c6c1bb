// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing texts of the feedback site shared
// by the HTTP handlers: flash messages, form errors and page titles.
//
// Keeping them in one place ensures consistent wording throughout the site.
package app

const (
	// MsgInvalidLoginPassword is shown under the password field when the
	// username is unknown or the password is wrong.
	MsgInvalidLoginPassword = "That username or password was incorrect. Please try again."

	// MsgUsernameTaken is shown under the username field on registration.
	MsgUsernameTaken = "That username is already taken."

	// MsgEmailTaken is shown under the email field on registration.
	MsgEmailTaken = "That email is already registered."

	// MsgPasswordTooLong is shown under the password field when the password
	// is longer than bcrypt accepts.
	MsgPasswordTooLong = "Password must be at most 72 bytes."

	// MsgIdentityTaken is shown when a unique violation could not be
	// attributed to a single field.
	MsgIdentityTaken = "That username or email is already in use."

	// MsgTooManyAttempts is shown above the login form while the client is
	// locked out.
	MsgTooManyAttempts = "Too many failed sign-in attempts. Please try again later."

	// MsgInvalidCSRF is flashed when a form arrives without a valid token.
	MsgInvalidCSRF = "Your form session expired. Please try again."

	// MsgInternalServerError is shown on the error page.
	MsgInternalServerError = "Something went wrong on our end. Please try again later."

	// MsgNotFound is shown on the 404 page.
	MsgNotFound = "The page you are looking for does not exist."
)

// Flash messages for rejected access to guarded pages.
const (
	MsgViewUserDenied       = "A user's details can only be viewed by that user while they are logged in."
	MsgDeleteUserDenied     = "You can only delete your own account and you must be logged in."
	MsgFeedbackFormDenied   = "A user's feedback form can only be viewed by that user while they are logged in."
	MsgAddFeedbackDenied    = "You can only submit feedback while you are logged in."
	MsgEditFeedbackDenied   = "You can only edit your own feedback and you must be logged in."
	MsgDeleteFeedbackDenied = "You can only delete your own feedback and you must be logged in."
)

// Flash messages for completed actions.
const (
	MsgRegistered      = "Welcome! Your account has been created."
	MsgLoggedIn        = "Welcome back!"
	MsgLoggedOut       = "You have been logged out."
	MsgAccountDeleted  = "Your account and all of your feedback have been deleted."
	MsgFeedbackAdded   = "Thanks for your feedback!"
	MsgFeedbackUpdated = "Your feedback has been updated."
	MsgFeedbackDeleted = "Your feedback has been deleted."
)
