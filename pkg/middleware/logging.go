package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/pkg/logger"
)

// Logging logs every request with status and duration
func Logging() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			event := logger.Info(r.Context())
			switch {
			case rw.statusCode >= 500:
				event = logger.Error(r.Context())
			case rw.statusCode >= 400:
				event = logger.Warn(r.Context())
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routeTemplate(r)).
				Str("remote_addr", r.RemoteAddr).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Msg("HTTP request completed")
		})
	}
}
