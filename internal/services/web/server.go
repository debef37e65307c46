package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/earlypay/internal/authflow/submit"
	"github.com/louisbranch/earlypay/internal/platform/logging"
	"github.com/louisbranch/earlypay/internal/platform/timeouts"
	webapp "github.com/louisbranch/earlypay/internal/services/web/app"
	module "github.com/louisbranch/earlypay/internal/services/web/module"
	"github.com/louisbranch/earlypay/internal/services/web/modules"
	"github.com/louisbranch/earlypay/internal/services/web/platform/httpx"
	"github.com/louisbranch/earlypay/internal/services/web/platform/observability"
	"github.com/louisbranch/earlypay/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/earlypay/internal/services/web/platform/weberror"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
	"github.com/louisbranch/earlypay/internal/services/web/static"
	"github.com/louisbranch/earlypay/internal/services/web/storage"
	"go.uber.org/zap"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	Gateway  module.Gateway
	Sessions storage.SessionStore
	Policy   requestmeta.SchemePolicy
	Logger   *zap.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	sessions   storage.SessionStore
	logger     *zap.Logger
}

// NewHandler builds the root handler: static assets, the feature modules and
// the shared middleware chain.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	logger := logging.OrNop(cfg.Logger)
	deps := modules.Dependencies{
		Gateway:  cfg.Gateway,
		Sessions: cfg.Sessions,
		Guard:    submit.NewGuard(),
		Policy:   cfg.Policy,
		Logger:   logger,
	}
	root, err := webapp.Compose(webapp.ComposeInput{
		Extra: map[string]http.Handler{
			routepath.StaticPrefix: http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))),
		},
		Modules: modules.DefaultModules(deps),
	})
	if err != nil {
		return nil, fmt.Errorf("compose web modules: %w", err)
	}
	return httpx.Chain(root,
		httpx.RecoverPanic(logger, weberror.PanicHandler(cfg.Policy)),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		httpx.RequireSameOrigin(cfg.Policy),
	), nil
}

// NewServer builds a web server bound to cfg.HTTPAddr.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		sessions: cfg.Sessions,
		logger:   logging.OrNop(cfg.Logger),
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is canceled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil || s.httpServer == nil {
		return errors.New("web server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", listener.Addr().String()))
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	}
}

// Close releases the session store.
func (s *Server) Close() error {
	if s == nil || s.sessions == nil {
		return nil
	}
	return s.sessions.Close()
}
