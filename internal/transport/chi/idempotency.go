package chi

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/history"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/domain/idempotency"
	"github.com/kailas-cloud/resumatch/internal/logger"
	"github.com/kailas-cloud/resumatch/internal/metrics"
)

// IdempotencyStore keeps replayable responses keyed by request scope.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope string) (idempotency.Response, bool, error)
	Save(ctx context.Context, scope string, resp idempotency.Response) (bool, error)
}

// IdempotencyMiddleware replays stored 2xx responses for a repeated
// Idempotency-Key and stores fresh ones. The key is also put into the
// request context for the audit trail. A nil store only propagates the key.
// Cache failures are logged and never fail the request.
func IdempotencyMiddleware(store IdempotencyStore, base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotency.HeaderKey)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > history.MaxIdempotencyKeyLength {
				writeFieldError(w, &domain.FieldError{
					Field:   idempotency.HeaderKey,
					Code:    domain.CodeInvalidField,
					Message: "idempotency key too long (max " + strconv.Itoa(history.MaxIdempotencyKeyLength) + ")",
				})
				return
			}

			r = r.WithContext(idempotency.NewContext(r.Context(), key))
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}

			caller, _ := identity.FromContext(r.Context())
			scope := idempotency.Scope(caller.UserID, r.Method, r.URL.Path, key)
			log := logger.With(r.Context(), base)

			cached, hit, err := store.Lookup(r.Context(), scope)
			if err != nil {
				log.Warn("idempotency lookup failed", zap.Error(err))
			}
			if hit {
				metrics.IdempotentReplaysTotal.WithLabelValues(routePattern(r)).Inc()
				replay(w, cached)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status < 200 || rec.status >= 300 {
				return
			}
			resp := idempotency.Response{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}
			if _, err := store.Save(r.Context(), scope, resp); err != nil {
				log.Warn("idempotency save failed", zap.Error(err))
			}
		})
	}
}

func replay(w http.ResponseWriter, resp idempotency.Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.Header().Set(idempotency.HeaderReplayed, "true")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unknown"
}

// recordingWriter passes the response through and keeps a copy of it.
type recordingWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}
