package fakeapi

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/earlypay/internal/platform/cmd"
	"github.com/louisbranch/earlypay/internal/platform/logging"
	"github.com/louisbranch/earlypay/internal/platform/timeouts"
	"github.com/louisbranch/earlypay/internal/services/fakeapi"
	"go.uber.org/zap"
)

// Config holds the fake API command configuration.
type Config struct {
	HTTPAddr    string        `env:"EARLYPAY_FAKEAPI_HTTP_ADDR" envDefault:"localhost:8081"`
	SeedPath    string        `env:"EARLYPAY_FAKEAPI_SEED_PATH"`
	TokenSecret string        `env:"EARLYPAY_FAKEAPI_TOKEN_SECRET" envDefault:"earlypay-dev-secret"`
	TokenTTL    time.Duration `env:"EARLYPAY_FAKEAPI_TOKEN_TTL" envDefault:"1h"`

	Log logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SeedPath, "seed", cfg.SeedPath, "YAML file of seed accounts (defaults to the embedded demo accounts)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "Lifetime of issued bearer tokens")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return Config{}, errors.New("token secret is required")
	}
	return cfg, nil
}

// LoadSeed reads the seed file at path, or the embedded seed when path is
// empty.
func LoadSeed(path string) (fakeapi.Seed, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return fakeapi.DefaultSeed(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fakeapi.Seed{}, fmt.Errorf("read seed: %w", err)
	}
	return fakeapi.ParseSeed(raw)
}

// Run starts the fake API server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceFakeAPI, cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceFakeAPI, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		seed, err := LoadSeed(cfg.SeedPath)
		if err != nil {
			return err
		}
		dir, err := fakeapi.NewDirectory(seed, []byte(cfg.TokenSecret), fakeapi.WithTokenTTL(cfg.TokenTTL))
		if err != nil {
			return fmt.Errorf("load accounts: %w", err)
		}
		ln, err := net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
		}
		logger.Info("fake api listening", zap.String("addr", ln.Addr().String()), zap.Int("accounts", len(seed.Accounts)))
		return serve(ctx, fakeapi.NewApp(dir, logger), ln)
	})
}

type listenerApp interface {
	Listener(net.Listener) error
	ShutdownWithTimeout(timeout time.Duration) error
}

func serve(ctx context.Context, app listenerApp, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() { serveErr <- app.Listener(ln) }()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("serve fake api: %w", err)
		}
		return nil
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(timeouts.Shutdown); err != nil {
			return fmt.Errorf("shutdown fake api: %w", err)
		}
		<-serveErr
		return nil
	}
}
