package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewBuildsLoggerAtLevel(t *testing.T) {
	t.Parallel()

	logger, err := New("web", Config{Format: "json", Level: "warn"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("error should be enabled at warn level")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := New("web", Config{Format: "xml", Level: "info"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
	if _, err := New("web", Config{Format: "console", Level: "loud"}); err == nil {
		t.Fatal("expected level parse error")
	}
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
}
