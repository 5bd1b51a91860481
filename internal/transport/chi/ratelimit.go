package chi

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/metrics"
)

// minLimiterIdle is the shortest time a caller's bucket is kept after its last request.
const minLimiterIdle = time.Minute

// RateLimitMiddleware applies a token bucket per caller. Callers are keyed
// by user ID, falling back to the client IP for unauthenticated routes.
// A non-positive rps disables limiting.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = max(1, int(math.Ceil(rps)))
	}
	limiters := newLimiterSet(rps, burst, time.Now)

	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := limiters.get(callerKey(r)).Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				metrics.RateLimitedTotal.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeError(w, http.StatusTooManyRequests, CodeRateLimited, domain.ErrRateLimited.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// callerKey identifies the caller: the authenticated user, else the client
// host without the ephemeral port.
func callerKey(r *http.Request) string {
	if id, ok := identity.FromContext(r.Context()); ok {
		return "user:" + id.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one limiter per caller and drops callers idle longer
// than a full bucket refill, whose state equals a fresh limiter.
type limiterSet struct {
	mu        sync.Mutex
	rps       float64
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	entries   map[string]*limiterEntry
}

func newLimiterSet(rps float64, burst int, now func() time.Time) *limiterSet {
	idle := minLimiterIdle
	if rps > 0 {
		idle = max(idle, time.Duration(float64(burst)/rps*float64(time.Second)))
	}
	return &limiterSet{
		rps:       rps,
		burst:     burst,
		idle:      idle,
		now:       now,
		lastSweep: now(),
		entries:   make(map[string]*limiterEntry),
	}
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idle {
		s.sweep(now)
	}
	e, ok := s.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

func (s *limiterSet) sweep(now time.Time) {
	for k, e := range s.entries {
		if now.Sub(e.lastSeen) >= s.idle {
			delete(s.entries, k)
		}
	}
	s.lastSweep = now
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
