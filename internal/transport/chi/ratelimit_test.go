package chi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/domain/role"
)

func TestRateLimit_AnonymousKeyedByHost(t *testing.T) {
	h := RateLimitMiddleware(1, 1)(okHandler())

	limited := 0
	for port := 1000; port < 1010; port++ {
		req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
		req.RemoteAddr = fmt.Sprintf("10.0.0.1:%d", port)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 9 {
		t.Errorf("limited = %d, want 9 (one bucket per host)", limited)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.RemoteAddr = "10.0.0.2:1000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("other host status = %d, want 200", rr.Code)
	}
}

func TestCallerKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.RemoteAddr = "[::1]:5555"
	if got := callerKey(req); got != "ip:::1" {
		t.Errorf("ipv6 key = %q", got)
	}

	req.RemoteAddr = "pipe"
	if got := callerKey(req); got != "ip:pipe" {
		t.Errorf("portless key = %q", got)
	}

	req = req.WithContext(identity.NewContext(req.Context(), identity.Identity{UserID: "alice", Role: role.User}))
	if got := callerKey(req); got != "user:alice" {
		t.Errorf("user key = %q", got)
	}
}

func TestLimiterSet_EvictsIdleCallers(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	s := newLimiterSet(10, 5, clock)

	for i := range 100 {
		s.get(fmt.Sprintf("ip:10.0.0.%d", i))
	}
	if n := s.size(); n != 100 {
		t.Fatalf("size = %d, want 100", n)
	}

	now = now.Add(minLimiterIdle / 2)
	s.get("ip:10.0.0.1") // refreshed, survives the sweep

	now = now.Add(minLimiterIdle / 2)
	s.get("ip:new")

	if n := s.size(); n != 2 {
		t.Errorf("size after sweep = %d, want 2", n)
	}
}

func TestLimiterSet_IdleCoversRefill(t *testing.T) {
	s := newLimiterSet(0.01, 5, time.Now)
	if s.idle < 500*time.Second {
		t.Errorf("idle = %v, want at least the 500s refill time", s.idle)
	}
}
