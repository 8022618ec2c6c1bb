package http

import (
	"net/http"

	"github.com/MKhiriev/go-feedback/internal/logger"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID tags the request logger with a trace id and echoes it in the
// response. A well-formed X-Trace-ID header is reused; otherwise a new id is
// generated.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !h.traceIDs.Valid(traceID) {
			traceID = h.traceIDs.Generate()
		}

		ctx := logger.WithField(r.Context(), h.logger, "trace_id", traceID)

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
