package http

import (
	"net/http"
	"time"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
)

// withLogging emits one structured log line per request: method, uri,
// status, duration, and response size. Request bodies are never logged;
// they may carry credentials or PII.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}
