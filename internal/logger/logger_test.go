package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
		l, err := NewLogger(env, "")
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", env, err)
		}
		if l == nil {
			t.Fatalf("NewLogger(%q) returned nil", env)
		}
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging", ""); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Error("info must be disabled at warn level")
	}
	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	FromContext(ctx).Info("hello")
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}

	// Missing logger falls back to a no-op instead of panicking.
	FromContext(context.Background()).Info("dropped")
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := zap.New(core)

	With(context.Background(), base, zap.String("k", "v")).Info("from base")
	if logs.Len() != 1 || logs.All()[0].ContextMap()["k"] != "v" {
		t.Fatalf("unexpected logs: %+v", logs.All())
	}

	ctxCore, ctxLogs := observer.New(zap.DebugLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(ctxCore))
	With(ctx, base).Info("from ctx")
	if ctxLogs.Len() != 1 {
		t.Error("context logger must win over base")
	}
}
