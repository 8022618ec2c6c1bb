package http

import (
	"net/http"

	"github.com/MKhiriev/go-feedback/internal/logger"
)

// getServerVersion answers GET /version with the build metadata as plain
// text, one "key: value" pair per line.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	buildInfo := h.services.AppInfoService.GetBuildInfo(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(buildInfo.String() + "\n")); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Msg("error writing response")
	}
}
