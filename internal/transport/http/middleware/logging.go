package middleware

import (
	"net/http"
	"time"

	"github.com/neubri/threads-clone/internal/logging"
)

const TraceHeader = "X-Trace-ID"

// Logging tags the request with a trace id (taken from X-Trace-ID when the
// client sends one) and logs the request once it completes.
func Logging(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = logging.NewTraceID()
			}
			ctx := logging.WithTraceID(r.Context(), traceID)
			w.Header().Set(TraceHeader, traceID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			logger.LogRequest(ctx, r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}
