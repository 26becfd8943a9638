package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

const (
	TraceHeader     = "X-Trace-ID"
	maxTraceIDBytes = 128
)

// RequestID propagates the caller's X-Trace-ID, or a fresh UUID when absent
// or oversized, into the request logger and the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" || len(traceID) > maxTraceIDBytes {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
