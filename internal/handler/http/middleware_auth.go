package http

import (
	"net/http"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/utils"
)

// withIdentity stores the username of the session, if any, in the request
// context under [utils.UsernameCtxKey] and adds it to the request logger.
// It never rejects a request: pages decide themselves what an anonymous
// visitor may see.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := h.sessions.Identity(r)
		if identity == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithField(r.Context(), logger.FromRequest(r), "identity", identity)
		ctx = utils.WithUsername(ctx, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
