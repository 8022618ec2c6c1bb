// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Form field names. They are shared by the HTML forms, the validators and
// the duplicate identity errors so that an error can always be attached to
// the input that caused it.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldTitle     = "title"
	FieldContent   = "content"
)

// RegisterForm carries the values submitted on the registration page.
// Password is the raw password and must never be persisted or logged.
type RegisterForm struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Values returns the submitted values suitable for re-rendering the form.
// The password is deliberately left out.
func (f RegisterForm) Values() map[string]string {
	return map[string]string{
		FieldUsername:  f.Username,
		FieldEmail:     f.Email,
		FieldFirstName: f.FirstName,
		FieldLastName:  f.LastName,
	}
}

// LoginForm carries the values submitted on the login page.
type LoginForm struct {
	Username string
	Password string
}

// Values returns the submitted values without the password.
func (f LoginForm) Values() map[string]string {
	return map[string]string{FieldUsername: f.Username}
}

// FeedbackForm carries the values submitted when adding feedback.
type FeedbackForm struct {
	Title   string
	Content string
}

// Values returns the submitted values suitable for re-rendering the form.
func (f FeedbackForm) Values() map[string]string {
	return map[string]string{
		FieldTitle:   f.Title,
		FieldContent: f.Content,
	}
}

// EditFeedbackForm carries the values submitted when editing feedback.
// A blank field keeps the stored value.
type EditFeedbackForm struct {
	Title   string
	Content string
}

// Values returns the submitted values suitable for re-rendering the form.
func (f EditFeedbackForm) Values() map[string]string {
	return map[string]string{
		FieldTitle:   f.Title,
		FieldContent: f.Content,
	}
}

// Update converts the form into a partial update of feedback id.
func (f EditFeedbackForm) Update(id int64) FeedbackUpdate {
	update := FeedbackUpdate{ID: id}
	if f.Title != "" {
		title := f.Title
		update.Title = &title
	}
	if f.Content != "" {
		content := f.Content
		update.Content = &content
	}
	return update
}
