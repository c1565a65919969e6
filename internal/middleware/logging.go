package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingMiddleware writes one structured line per request.
func LoggingMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// capture response status
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(rw, r)
			duration := time.Since(start)

			event := logger.Info()
			switch {
			case rw.status >= http.StatusInternalServerError:
				event = logger.Error()
			case rw.status >= http.StatusBadRequest:
				event = logger.Warn()
			}
			// invitation links carry the token in the path
			event.
				Str("method", r.Method).
				Str("path", redactPath(r.URL.Path)).
				Int("status", rw.status).
				Dur("duration", duration).
				Msg("request")
		})
	}
}

const invitationPrefix = "/invitations/"

func redactPath(path string) string {
	if strings.HasPrefix(path, invitationPrefix) && len(path) > len(invitationPrefix) {
		return invitationPrefix + "***"
	}
	return path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
