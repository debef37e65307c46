package web

import (
	"context"
	"flag"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/louisbranch/earlypay/internal/services/web/storage/memory"
	"github.com/louisbranch/earlypay/internal/services/web/storage/sqlite"
	"go.uber.org/zap"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.APIBaseURL != "http://localhost:8081" {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://localhost:8081")
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("APITimeout = %v, want 10s", cfg.APITimeout)
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Fatalf("SessionStore = %q, want memory", cfg.SessionStore)
	}
	if cfg.SessionIdle != 24*time.Hour {
		t.Fatalf("SessionIdle = %v, want 24h", cfg.SessionIdle)
	}
	if cfg.TrustForwardedProto {
		t.Fatal("TrustForwardedProto = true, want false")
	}
	if cfg.Log.Format != "console" || cfg.Log.Level != "info" {
		t.Fatalf("Log = %+v, want console/info", cfg.Log)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "127.0.0.1:9002",
		"-api-base-url", "https://api.example.com",
		"-session-store", "SQLite",
		"-trust-forwarded-proto",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SessionStore != SessionStoreSQLite {
		t.Fatalf("SessionStore = %q, want sqlite", cfg.SessionStore)
	}
	if !cfg.TrustForwardedProto {
		t.Fatal("TrustForwardedProto = false, want true")
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("EARLYPAY_WEB_HTTP_ADDR", "0.0.0.0:8000")
	t.Setenv("EARLYPAY_WEB_API_TIMEOUT", "2s")
	t.Setenv("EARLYPAY_LOG_FORMAT", "json")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:8000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:8000")
	}
	if cfg.APITimeout != 2*time.Second {
		t.Fatalf("APITimeout = %v, want 2s", cfg.APITimeout)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestParseConfigFlagBeatsEnv(t *testing.T) {
	t.Setenv("EARLYPAY_WEB_HTTP_ADDR", "0.0.0.0:8000")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "localhost:7000"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:7000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:7000")
	}
}

func TestParseConfigRejectsUnknownSessionStore(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-session-store", "redis"}); err == nil {
		t.Fatal("ParseConfig() error = nil, want unknown store error")
	}
}

func TestOpenSessions(t *testing.T) {
	t.Parallel()

	mem, err := openSessions(context.Background(), Config{SessionStore: SessionStoreMemory, SessionIdle: time.Hour})
	if err != nil {
		t.Fatalf("openSessions(memory) error = %v", err)
	}
	if _, ok := mem.(*memory.Store); !ok {
		t.Fatalf("openSessions(memory) = %T", mem)
	}
	_ = mem.Close()

	path := filepath.Join(t.TempDir(), "sessions.db")
	db, err := openSessions(context.Background(), Config{SessionStore: SessionStoreSQLite, SessionDBPath: path, SessionIdle: time.Hour})
	if err != nil {
		t.Fatalf("openSessions(sqlite) error = %v", err)
	}
	defer db.Close()
	if _, ok := db.(*sqlite.Store); !ok {
		t.Fatalf("openSessions(sqlite) = %T", db)
	}
}

type countingStore struct {
	*memory.Store
	calls atomic.Int32
}

func (s *countingStore) PruneExpired(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return s.Store.PruneExpired(ctx)
}

func TestPruneSessionsStopsWithContext(t *testing.T) {
	t.Parallel()

	store := &countingStore{Store: memory.New(time.Hour)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pruneSessions(ctx, store, time.Millisecond, zap.NewNop())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("prune never ran")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pruneSessions did not stop after cancel")
	}
}
