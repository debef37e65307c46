package web

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/earlypay/internal/apiclient"
	entrypoint "github.com/louisbranch/earlypay/internal/platform/cmd"
	"github.com/louisbranch/earlypay/internal/platform/logging"
	"github.com/louisbranch/earlypay/internal/platform/timeouts"
	"github.com/louisbranch/earlypay/internal/services/web"
	"github.com/louisbranch/earlypay/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/earlypay/internal/services/web/storage"
	"github.com/louisbranch/earlypay/internal/services/web/storage/memory"
	"github.com/louisbranch/earlypay/internal/services/web/storage/sqlite"
	"go.uber.org/zap"
)

// Session store kinds.
const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
)

const pruneInterval = 15 * time.Minute

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"EARLYPAY_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL          string        `env:"EARLYPAY_WEB_API_BASE_URL" envDefault:"http://localhost:8081"`
	APITimeout          time.Duration `env:"EARLYPAY_WEB_API_TIMEOUT" envDefault:"10s"`
	SessionStore        string        `env:"EARLYPAY_WEB_SESSION_STORE" envDefault:"memory"`
	SessionDBPath       string        `env:"EARLYPAY_WEB_SESSION_DB_PATH" envDefault:"data/web-sessions.db"`
	SessionIdle         time.Duration `env:"EARLYPAY_WEB_SESSION_IDLE" envDefault:"24h"`
	TrustForwardedProto bool          `env:"EARLYPAY_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`

	Log logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Backend API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Timeout for one backend request")
	fs.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "Session store: memory or sqlite")
	fs.StringVar(&cfg.SessionDBPath, "session-db-path", cfg.SessionDBPath, "SQLite session database path")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto for secure cookies")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	if cfg.SessionStore != SessionStoreMemory && cfg.SessionStore != SessionStoreSQLite {
		return Config{}, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = timeouts.APIRequest
	}
	if cfg.SessionIdle <= 0 {
		cfg.SessionIdle = timeouts.SessionIdle
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceWeb, cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		client, err := apiclient.New(cfg.APIBaseURL, apiclient.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}))
		if err != nil {
			return fmt.Errorf("init api client: %w", err)
		}
		sessions, err := openSessions(ctx, cfg)
		if err != nil {
			return err
		}

		server, err := web.NewServer(web.Config{
			HTTPAddr: cfg.HTTPAddr,
			Gateway:  client,
			Sessions: sessions,
			Policy:   requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
			Logger:   logger,
		})
		if err != nil {
			_ = sessions.Close()
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		go pruneSessions(ctx, sessions, pruneInterval, logger)

		logger.Info("web backend", zap.String("api", cfg.APIBaseURL), zap.String("session_store", cfg.SessionStore))
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func openSessions(ctx context.Context, cfg Config) (storage.SessionStore, error) {
	switch cfg.SessionStore {
	case SessionStoreSQLite:
		if dir := filepath.Dir(cfg.SessionDBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create session db dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.SessionDBPath, cfg.SessionIdle)
		if err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
		return store, nil
	default:
		return memory.New(cfg.SessionIdle), nil
	}
}

type pruner interface {
	PruneExpired(ctx context.Context) (int, error)
}

// pruneSessions drops idle sessions every interval until ctx ends.
func pruneSessions(ctx context.Context, sessions storage.SessionStore, interval time.Duration, logger *zap.Logger) {
	p, ok := sessions.(pruner)
	if !ok || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := p.PruneExpired(ctx)
			if err != nil {
				logger.Warn("prune sessions", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Debug("pruned sessions", zap.Int("removed", removed))
			}
		}
	}
}
