package thttp

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/outofforest/euid/pkg/idgen"
	"github.com/outofforest/logger"
)

// RequestIDHeader carries the identifier of the request.
const RequestIDHeader = "X-Request-Id"

// Log is a middleware that logs before and after handling of each request.
// Does not include logging of request and response bodies.
//
// Requests without RequestIDHeader get an identifier from the generator found in the request
// context. The identifier is logged and sent back in the same header.
func Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = idgen.ID(r.Context())
			r.Header.Set(RequestIDHeader, requestID)
		}
		ctx := logger.With(r.Context(),
			zap.String("requestID", requestID),
			zap.String("method", r.Method),
			zap.Stringer("url", r.URL),
		)
		log := logger.Get(ctx)
		log.Info("HTTP request handling started")
		w.Header().Set(RequestIDHeader, requestID)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))
		log.Info("HTTP request handling ended", zap.Int("statusCode", sw.status),
			zap.Duration("elapsed", time.Since(started)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
