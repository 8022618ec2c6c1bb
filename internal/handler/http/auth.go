package http

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/internal/utils"
	"github.com/MKhiriev/go-feedback/models"
)

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageRegister, pageData{Title: "Register"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	form := models.RegisterForm{
		Username:  r.PostFormValue(models.FieldUsername),
		Password:  r.PostFormValue(models.FieldPassword),
		Email:     r.PostFormValue(models.FieldEmail),
		FirstName: r.PostFormValue(models.FieldFirstName),
		LastName:  r.PostFormValue(models.FieldLastName),
	}

	if err := h.validator.Validate(ctx, &form); err != nil {
		h.rerender(w, r, pageRegister, "Register", form.Values(), err)
		return
	}

	user, err := h.services.AuthService.Register(ctx, form)
	if err != nil {
		h.rerender(w, r, pageRegister, "Register", form.Values(), err)
		return
	}

	if err = h.sessions.SignIn(w, r, user.Username); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("error saving session")
		h.internalError(w, r)
		return
	}

	h.flash(w, r, session.FlashInfo, app.MsgRegistered)
	utils.SeeOther(w, r, userPath(user.Username))
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLogin, pageData{Title: "Log in"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	form := models.LoginForm{
		Username: r.PostFormValue(models.FieldUsername),
		Password: r.PostFormValue(models.FieldPassword),
	}

	if err := h.validator.Validate(ctx, &form); err != nil {
		h.rerender(w, r, pageLogin, "Log in", form.Values(), err)
		return
	}

	client := clientKey(r)
	wait, err := h.limiter.Check(ctx, client)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("login limiter unavailable")
	}
	if wait > 0 {
		log.Warn().Str("func", "*Handler.login").Dur("retry_after", wait).Msg("login throttled")
		w.Header().Set("Retry-After", retryAfter(wait))
		h.rerender(w, r, pageLogin, "Log in", form.Values(), ErrTooManyAttempts)
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, form.Username, form.Password)
	if err != nil {
		if statusFromError(err) == http.StatusUnauthorized {
			if _, limitErr := h.limiter.RecordFailure(ctx, client); limitErr != nil {
				log.Err(limitErr).Str("func", "*Handler.login").Msg("error recording failed login")
			}
		}
		h.rerender(w, r, pageLogin, "Log in", form.Values(), err)
		return
	}

	if err = h.limiter.Reset(ctx, client); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error resetting login attempts")
	}

	if err = h.sessions.SignIn(w, r, user.Username); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error saving session")
		h.internalError(w, r)
		return
	}

	h.flash(w, r, session.FlashInfo, app.MsgLoggedIn)
	utils.SeeOther(w, r, userPath(user.Username))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.logout").Msg("error clearing session")
	}

	h.flash(w, r, session.FlashInfo, app.MsgLoggedOut)
	utils.SeeOther(w, r, "/")
}

// rerender shows a rejected form again with its messages, or falls back to
// the error page when err is not about the form.
func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, page, title string, values map[string]string, err error) {
	fieldErrs, formErr, ok := formErrors(err)
	if !ok {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.rerender").Str("page", page).Msg("request failed")
		h.internalError(w, r)
		return
	}

	h.render(w, r, statusFromError(err), page, pageData{
		Title:     title,
		Form:      values,
		Errors:    fieldErrs,
		FormError: formErr,
	})
}

// clientKey identifies the client for login throttling. RemoteAddr is
// already rewritten by middleware.RealIP behind a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}

// retryAfter formats wait as whole seconds, rounded up, for the Retry-After
// header.
func retryAfter(wait time.Duration) string {
	return strconv.FormatInt(int64((wait+time.Second-1)/time.Second), 10)
}
