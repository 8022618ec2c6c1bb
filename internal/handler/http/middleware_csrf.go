package http

import (
	"net/http"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/logger"
)

const (
	csrfFormField = "csrf_token"
	csrfHeader    = "X-CSRF-Token"

	maxFormSize = 1 << 20
)

// withCSRF rejects state-changing requests whose form field or header does
// not carry the CSRF token of the session.
func (h *Handler) withCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
		token := r.PostFormValue(csrfFormField)
		if token == "" {
			token = r.Header.Get(csrfHeader)
		}

		if !h.sessions.VerifyCSRF(r, token) {
			logger.FromRequest(r).Warn().
				Str("func", "*Handler.withCSRF").
				Str("path", r.URL.Path).
				Msg("CSRF token mismatch")

			h.render(w, r, http.StatusForbidden, pageError, pageData{
				Title:   "Forbidden",
				Message: app.MsgInvalidCSRF,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
