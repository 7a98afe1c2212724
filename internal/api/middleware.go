package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"captions/internal/logging"
)

// AuthMiddleware validates the bearer token.
func AuthMiddleware(token string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing authorization")
				return
			}
			presented := strings.TrimPrefix(auth, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				log.Warn("rejected api token", logging.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, "invalid api token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CorrelationMiddleware carries chi's request ID into the logging context so
// loader logs for one request share a correlation ID.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logging.WithCorrelationID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logging.WithContext(r.Context(), log).Info("request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", sw.status),
				logging.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
