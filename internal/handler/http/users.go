package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/internal/utils"
)

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetUsernameFromContext(ctx)
	username := chi.URLParam(r, "username")

	profile, err := h.services.UserService.Profile(ctx, identity, username)
	if err != nil {
		h.handleError(w, r, err, app.MsgViewUserDenied)
		return
	}

	h.render(w, r, http.StatusOK, pageUser, pageData{
		Title:   profile.User.Username,
		Profile: profile,
	})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetUsernameFromContext(ctx)
	username := chi.URLParam(r, "username")

	if err := h.services.UserService.DeleteAccount(ctx, identity, username); err != nil {
		h.handleError(w, r, err, app.MsgDeleteUserDenied)
		return
	}

	if err := h.sessions.SignOut(w, r); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteUser").Msg("error clearing session")
	}

	h.flash(w, r, session.FlashInfo, app.MsgAccountDeleted)
	utils.SeeOther(w, r, "/")
}
