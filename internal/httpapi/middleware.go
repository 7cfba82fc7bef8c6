package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tajik-krasava/RPP/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// WithRequestLog logs one summary line per request with a generated request id.
func WithRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		ctx := logger.WithRID(r.Context(), rid)
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.HTTP.Info("request handled",
			slog.String("event", "http.request"),
			slog.String("rid", rid),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
	})
}
