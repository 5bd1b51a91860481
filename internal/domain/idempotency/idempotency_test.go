package idempotency

import (
	"context"
	"testing"
)

func TestScope(t *testing.T) {
	base := Scope("u1", "POST", "/api/v1/search", "k1")
	if len(base) != 64 {
		t.Fatalf("len = %d, want 64 hex chars", len(base))
	}
	if Scope("u1", "POST", "/api/v1/search", "k1") != base {
		t.Error("Scope is not deterministic")
	}
	for _, other := range []string{
		Scope("u2", "POST", "/api/v1/search", "k1"),
		Scope("u1", "POST", "/api/v1/jobs/j1/match", "k1"),
		Scope("u1", "POST", "/api/v1/search", "k2"),
		Scope("u1POST", "", "/api/v1/search", "k1"),
	} {
		if other == base {
			t.Error("distinct inputs produced the same scope")
		}
	}
}

func TestKeyFromContext(t *testing.T) {
	if KeyFromContext(context.Background()) != "" {
		t.Error("expected empty key")
	}
	ctx := NewContext(context.Background(), "k1")
	if KeyFromContext(ctx) != "k1" {
		t.Errorf("KeyFromContext = %q", KeyFromContext(ctx))
	}
}
