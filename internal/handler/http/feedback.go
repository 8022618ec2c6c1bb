package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/service"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/internal/utils"
	"github.com/MKhiriev/go-feedback/models"
)

func (h *Handler) showAddFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetUsernameFromContext(ctx)
	username := chi.URLParam(r, "username")

	user, err := h.services.UserService.Get(ctx, identity, username)
	if err != nil {
		h.handleError(w, r, err, app.MsgFeedbackFormDenied)
		return
	}

	h.render(w, r, http.StatusOK, pageFeedbackAdd, pageData{
		Title:    "Add feedback",
		Username: user.Username,
	})
}

func (h *Handler) addFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetUsernameFromContext(ctx)
	username := chi.URLParam(r, "username")

	// a foreign or anonymous visitor is turned away before the form is read
	if !service.CanMutateFeedback(identity, username) {
		h.handleError(w, r, service.ErrUnauthorized, app.MsgAddFeedbackDenied)
		return
	}

	form := models.FeedbackForm{
		Title:   r.PostFormValue(models.FieldTitle),
		Content: r.PostFormValue(models.FieldContent),
	}

	if err := h.validator.Validate(ctx, &form); err != nil {
		h.renderFeedbackForm(w, r, pageFeedbackAdd, pageData{
			Title:    "Add feedback",
			Username: username,
			Form:     form.Values(),
		}, err)
		return
	}

	if _, err := h.services.FeedbackService.Add(ctx, identity, username, form); err != nil {
		h.handleError(w, r, err, app.MsgAddFeedbackDenied)
		return
	}

	h.flash(w, r, session.FlashInfo, app.MsgFeedbackAdded)
	utils.SeeOther(w, r, feedbackListPath(username))
}

func (h *Handler) showEditFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetUsernameFromContext(ctx)

	id, err := feedbackID(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	feedback, err := h.services.FeedbackService.Get(ctx, identity, id)
	if err != nil {
		h.handleError(w, r, err, app.MsgEditFeedbackDenied)
		return
	}

	h.render(w, r, http.StatusOK, pageFeedbackEdit, pageData{
		Title:    "Edit feedback",
		Feedback: feedback,
	})
}

func (h *Handler) editFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetUsernameFromContext(ctx)

	id, err := feedbackID(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	feedback, err := h.services.FeedbackService.Get(ctx, identity, id)
	if err != nil {
		h.handleError(w, r, err, app.MsgEditFeedbackDenied)
		return
	}

	form := models.EditFeedbackForm{
		Title:   r.PostFormValue(models.FieldTitle),
		Content: r.PostFormValue(models.FieldContent),
	}

	if err = h.validator.Validate(ctx, &form); err != nil {
		h.renderFeedbackForm(w, r, pageFeedbackEdit, pageData{
			Title:    "Edit feedback",
			Feedback: feedback,
			Form:     form.Values(),
		}, err)
		return
	}

	updated, err := h.services.FeedbackService.Update(ctx, identity, id, form.Update(id))
	if err != nil {
		h.handleError(w, r, err, app.MsgEditFeedbackDenied)
		return
	}

	h.flash(w, r, session.FlashInfo, app.MsgFeedbackUpdated)
	utils.SeeOther(w, r, feedbackListPath(updated.Username))
}

func (h *Handler) deleteFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetUsernameFromContext(ctx)

	id, err := feedbackID(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	owner, err := h.services.FeedbackService.Delete(ctx, identity, id)
	if err != nil {
		h.handleError(w, r, err, app.MsgDeleteFeedbackDenied)
		return
	}

	h.flash(w, r, session.FlashInfo, app.MsgFeedbackDeleted)
	utils.SeeOther(w, r, feedbackListPath(owner))
}

// renderFeedbackForm shows a rejected feedback form with its field errors.
func (h *Handler) renderFeedbackForm(w http.ResponseWriter, r *http.Request, page string, data pageData, err error) {
	fieldErrs, formErr, ok := formErrors(err)
	if !ok {
		h.handleError(w, r, err, "")
		return
	}

	data.Errors = fieldErrs
	data.FormError = formErr
	h.render(w, r, statusFromError(err), page, data)
}

func feedbackID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFeedbackID, chi.URLParam(r, "feedbackID"))
	}
	return id, nil
}

func feedbackListPath(username string) string {
	return userPath(username) + "#user-feedback"
}
