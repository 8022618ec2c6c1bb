package validators

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/models"
)

// FormValidator implements the Validator interface for the HTML forms of
// the site: RegisterForm, LoginForm, FeedbackForm and EditFeedbackForm.
//
// Pointer arguments are sanitized in place so the caller keeps the trimmed
// values. Value arguments are checked on a copy.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator constructs a FormValidator and returns it as the
// Validator interface.
func NewFormValidator() Validator {
	v := validator.New()
	// registration of a static rule only fails on an empty tag or nil func
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &FormValidator{validate: v}
}

// maxBytes limits the byte length of a string, unlike "max" which counts
// runes. bcrypt rejects passwords longer than 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validate checks obj against its FormSpec. Optional fields restrict the
// check to the named subset.
//
// Returns [FieldErrors] when at least one field is rejected,
// ErrUnsupportedType for unknown types and ErrUnknownField when fields names
// something the form does not have.
func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch form := obj.(type) {
	case *models.RegisterForm:
		return v.check(ctx, RegisterFormSpec, registerFields(form), fields)
	case models.RegisterForm:
		return v.check(ctx, RegisterFormSpec, registerFields(&form), fields)

	case *models.LoginForm:
		return v.check(ctx, LoginFormSpec, loginFields(form), fields)
	case models.LoginForm:
		return v.check(ctx, LoginFormSpec, loginFields(&form), fields)

	case *models.FeedbackForm:
		return v.check(ctx, FeedbackFormSpec, feedbackFields(form), fields)
	case models.FeedbackForm:
		return v.check(ctx, FeedbackFormSpec, feedbackFields(&form), fields)

	case *models.EditFeedbackForm:
		return v.check(ctx, EditFeedbackFormSpec, editFeedbackFields(form), fields)
	case models.EditFeedbackForm:
		return v.check(ctx, EditFeedbackFormSpec, editFeedbackFields(&form), fields)

	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) check(ctx context.Context, spec FormSpec, values map[string]*string, fields []string) error {
	for _, name := range fields {
		if !spec.has(name) {
			return ErrUnknownField
		}
	}

	errs := FieldErrors{}
	for _, field := range spec {
		if len(fields) > 0 && !contains(fields, field.Name) {
			continue
		}

		value := values[field.Name]
		if field.Sanitize {
			*value = strings.TrimSpace(*value)
		}
		if field.Rules == "" {
			continue
		}

		err := v.validate.Var(*value, field.Rules)
		if err == nil {
			continue
		}

		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			logger.FromContext(ctx).Err(err).Str("func", "*FormValidator.check").Str("field", field.Name).Msg("bad validation rules")
			return err
		}
		for _, fe := range validationErrs {
			errs.Add(field.Name, field.message(fe.Tag(), fe.Param()))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

func registerFields(f *models.RegisterForm) map[string]*string {
	return map[string]*string{
		models.FieldUsername:  &f.Username,
		models.FieldPassword:  &f.Password,
		models.FieldEmail:     &f.Email,
		models.FieldFirstName: &f.FirstName,
		models.FieldLastName:  &f.LastName,
	}
}

func loginFields(f *models.LoginForm) map[string]*string {
	return map[string]*string{
		models.FieldUsername: &f.Username,
		models.FieldPassword: &f.Password,
	}
}

func feedbackFields(f *models.FeedbackForm) map[string]*string {
	return map[string]*string{
		models.FieldTitle:   &f.Title,
		models.FieldContent: &f.Content,
	}
}

func editFeedbackFields(f *models.EditFeedbackForm) map[string]*string {
	return map[string]*string{
		models.FieldTitle:   &f.Title,
		models.FieldContent: &f.Content,
	}
}
