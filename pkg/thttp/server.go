package thttp

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
)

const gracefulShutdownTimeout = 5 * time.Second

// Server wraps an HTTP server.
type Server struct {
	handler  http.Handler
	listener net.Listener
	options  []Option
	running  sync.WaitGroup
}

// An Option is a server configuration mixin.
//
// It is a function that modifies a http.Server before it starts serving
// requests.
type Option func(*http.Server)

// NewServer creates a Server.
func NewServer(listener net.Listener, handler http.Handler, opt ...Option) *Server {
	return &Server{
		handler:  handler,
		listener: listener,
		options:  opt,
	}
}

// Run serves requests until the context is closed, then performs graceful
// shutdown for up to gracefulShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ctx = logger.With(ctx, zap.Stringer("httpServer", s.listener.Addr()))
	// requests may outlive ctx during graceful shutdown
	reqCtx, reqCancel := context.WithCancel(context.WithoutCancel(ctx))

	log := logger.Get(ctx)
	errorLog, err := zap.NewStdLogAt(log, zap.WarnLevel)
	if err != nil {
		reqCancel()
		return errors.WithStack(err)
	}

	server := http.Server{
		Handler:           s.handler,
		ErrorLog:          errorLog,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return reqCtx },
		ConnContext:       s.connContext,
	}
	for _, opt := range s.options {
		opt(&server)
	}
	server.Handler = s.track(server.Handler)

	return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("serve", parallel.Fail, func(ctx context.Context) error {
			log.Info("Serving requests")
			err := server.Serve(s.listener)

			// http.ErrServerClosed means shutdown was requested.
			if errors.Is(err, http.ErrServerClosed) && ctx.Err() != nil {
				return errors.WithStack(ctx.Err())
			}
			return errors.WithStack(err)
		})

		spawn("shutdownHandler", parallel.Fail, func(ctx context.Context) error {
			<-ctx.Done()
			log.Info("Shutting down")

			shutdownCtx, cancel := context.WithTimeout(reqCtx, gracefulShutdownTimeout)
			defer cancel()
			defer reqCancel()
			defer server.Close()

			err := server.Shutdown(shutdownCtx)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Shutdown failed", zap.Error(err))
				return errors.WithStack(err)
			}

			reqCancel()
			s.running.Wait()

			log.Info("Shutdown complete")
			return errors.WithStack(ctx.Err())
		})
		return nil
	})
}

// ListenAddr returns the local address of the server's listener.
func (s *Server) ListenAddr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) connContext(ctx context.Context, conn net.Conn) context.Context {
	return logger.With(ctx, zap.Stringer("remoteAddr", conn.RemoteAddr()))
}

// track makes running handlers delay the end of shutdown.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.running.Add(1)
		defer s.running.Done()
		next.ServeHTTP(w, r)
	})
}

// Middleware is an Option that installs top-level middleware on the HTTP server.
// The first middleware listed will be the first one to see the request.
func Middleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *http.Server) {
		for i := len(mw) - 1; i >= 0; i-- {
			s.Handler = mw[i](s.Handler)
		}
	}
}

// StandardMiddleware logs each request and recovers from panics, in that order.
func StandardMiddleware(next http.Handler) http.Handler {
	return Log(Recover(next))
}
