package thttp

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/outofforest/logger"
)

// Recover is a middleware that catches and logs panics from HTTP handlers.
// Client receives status 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logger.Get(r.Context()).Error("Panic in HTTP handler", zap.Any("error", p),
					zap.ByteString("stack", debug.Stack()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
