package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/service"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/internal/utils"
	"github.com/MKhiriev/go-feedback/internal/validators"
	"github.com/MKhiriev/go-feedback/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusUnprocessableEntity,
	service.ErrPasswordTooLong:     http.StatusUnprocessableEntity,
	service.ErrDuplicateIdentity:   http.StatusConflict,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrUnauthorized:        http.StatusSeeOther,
	service.ErrNotFound:            http.StatusNotFound,

	ErrInvalidFeedbackID: http.StatusNotFound,
	ErrTooManyAttempts:   http.StatusTooManyRequests,
}

// statusFromError returns the status a page is answered with for err.
func statusFromError(err error) int {
	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusUnprocessableEntity
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// formErrors turns err into the messages shown on a re-rendered form.
// It reports false when err is not a form level error.
func formErrors(err error) (validators.FieldErrors, string, bool) {
	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, "", true
	}

	var dup *service.DuplicateIdentityError
	if errors.As(err, &dup) {
		errs := validators.FieldErrors{}
		if dup.Has(models.FieldUsername) {
			errs.Add(models.FieldUsername, app.MsgUsernameTaken)
		}
		if dup.Has(models.FieldEmail) {
			errs.Add(models.FieldEmail, app.MsgEmailTaken)
		}
		if len(errs) == 0 {
			return nil, app.MsgIdentityTaken, true
		}
		return errs, "", true
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		errs := validators.FieldErrors{}
		errs.Add(models.FieldPassword, app.MsgInvalidLoginPassword)
		return errs, "", true
	case errors.Is(err, service.ErrPasswordTooLong):
		errs := validators.FieldErrors{}
		errs.Add(models.FieldPassword, app.MsgPasswordTooLong)
		return errs, "", true
	case errors.Is(err, ErrTooManyAttempts):
		return nil, app.MsgTooManyAttempts, true
	case errors.Is(err, service.ErrInvalidDataProvided):
		return nil, service.ErrInvalidDataProvided.Error(), true
	}

	return nil, "", false
}

// handleError answers a failed guarded action: a denied access is flashed
// with deniedMsg and redirected home, a missing resource gets the 404 page
// and anything else the error page.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, deniedMsg string) {
	switch statusFromError(err) {
	case http.StatusSeeOther:
		h.flash(w, r, session.FlashError, deniedMsg)
		utils.SeeOther(w, r, "/")
	case http.StatusNotFound:
		h.notFound(w, r)
	default:
		logger.FromRequest(r).Err(err).Str("func", "*Handler.handleError").Msg("request failed")
		h.internalError(w, r)
	}
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, category, msg string) {
	if err := h.sessions.AddFlash(w, r, category, msg); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.flash").Msg("error saving flash")
	}
}
