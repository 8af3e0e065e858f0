package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/simplechat/simplechat/shared/logger"
	"github.com/simplechat/simplechat/shared/middleware/metrics"
)

const RequestIdHeader = "X-Request-Id"

type requestIdKey struct{}

// RequestLog tags every request with an id (kept from the client if it sent a valid uuid)
// and writes one log line when the request is done.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestId := r.Header.Get(RequestIdHeader)
		if _, err := uuid.Parse(requestId); err != nil {
			requestId = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, requestId)

		rec := metrics.NewStatusRecorder(w)
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIdKey{}, requestId)))

		attrs := []any{
			"request_id", requestId,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.StatusCode,
			"duration", time.Since(start),
		}
		if rec.StatusCode >= http.StatusInternalServerError {
			logger.Log.Error("request failed", attrs...)
			return
		}
		logger.Log.Info("request", attrs...)
	})
}

// GetRequestId returns the id assigned by RequestLog, empty outside of it.
func GetRequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}
