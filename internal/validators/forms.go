package validators

import (
	"fmt"

	"github.com/MKhiriev/go-feedback/models"
)

// FieldSpec describes how one form field is cleaned and checked.
type FieldSpec struct {
	// Name is the form field name, one of the models.Field* constants.
	Name string
	// Label is the human readable name used in default messages.
	Label string
	// Rules is a go-playground/validator tag evaluated against the value,
	// e.g. "required,max=20". Empty means no checks.
	Rules string
	// Messages overrides the default message per failed tag.
	Messages map[string]string
	// Sanitize trims surrounding whitespace before the checks run.
	Sanitize bool
}

// FormSpec is the ordered list of fields of a form.
type FormSpec []FieldSpec

func (f FieldSpec) message(tag, param string) string {
	if msg, ok := f.Messages[tag]; ok {
		return msg
	}

	switch tag {
	case "required":
		return f.Label + " is required."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", f.Label, param)
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes.", f.Label, param)
	case "email":
		return "That is not a valid email"
	default:
		return f.Label + " is invalid."
	}
}

func (s FormSpec) has(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

var (
	RegisterFormSpec = FormSpec{
		{
			Name: models.FieldUsername, Label: "Username", Rules: "required,max=20,excludesall=/?#%", Sanitize: true,
			Messages: map[string]string{
				"required":    "A username is required.",
				"excludesall": "A username cannot contain /, ?, # or %.",
			},
		},
		{
			Name: models.FieldPassword, Label: "Password", Rules: "required,maxbytes=72",
			Messages: map[string]string{"required": "A password is required."},
		},
		{
			Name: models.FieldEmail, Label: "Email", Rules: "required,email,max=50", Sanitize: true,
			Messages: map[string]string{"required": "An email is required.", "email": "That is not a valid email"},
		},
		{
			Name: models.FieldFirstName, Label: "First name", Rules: "required,max=30", Sanitize: true,
			Messages: map[string]string{"required": "A first name is required."},
		},
		{
			Name: models.FieldLastName, Label: "Last name", Rules: "required,max=30", Sanitize: true,
			Messages: map[string]string{"required": "A last name is required."},
		},
	}

	LoginFormSpec = FormSpec{
		{
			Name: models.FieldUsername, Label: "Username", Rules: "required", Sanitize: true,
			Messages: map[string]string{"required": "A username is required to sign in."},
		},
		{
			Name: models.FieldPassword, Label: "Password", Rules: "required",
			Messages: map[string]string{"required": "A password is required to sign in."},
		},
	}

	FeedbackFormSpec = FormSpec{
		{
			Name: models.FieldTitle, Label: "Title", Rules: "required,max=100", Sanitize: true,
			Messages: map[string]string{"required": "A title is required."},
		},
		{
			Name: models.FieldContent, Label: "Content", Rules: "required", Sanitize: true,
			Messages: map[string]string{"required": "Some feedback content is required."},
		},
	}

	// EditFeedbackFormSpec accepts blank fields; a blank field keeps the
	// stored value.
	EditFeedbackFormSpec = FormSpec{
		{Name: models.FieldTitle, Label: "Title", Rules: "omitempty,max=100", Sanitize: true},
		{Name: models.FieldContent, Label: "Content", Sanitize: true},
	}
)
