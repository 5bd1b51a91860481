// Package audit persists ranking runs as history entries on a best-effort basis.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
	"github.com/kailas-cloud/resumatch/internal/domain/idempotency"
	"github.com/kailas-cloud/resumatch/internal/logger"
)

// Writer stores history entries. Create reports false when the entry was
// dropped as a duplicate.
type Writer interface {
	Create(ctx context.Context, e *domhistory.Entry) (bool, error)
}

// Recorder writes history entries and swallows failures.
type Recorder struct {
	writer   Writer
	failures *prometheus.CounterVec
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Recorder. failures is a counter vec with label "pipeline"; it may be nil.
func New(w Writer, failures *prometheus.CounterVec, l *zap.Logger) *Recorder {
	if l == nil {
		l = zap.NewNop()
	}
	return &Recorder{writer: w, failures: failures, logger: l, now: time.Now}
}

// WithClock overrides the time source.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record serializes results and stores them. The idempotency key of the
// request, if any, rides along so repeated requests leave one row.
// Errors are logged at Warn and counted, never returned.
func (r *Recorder) Record(
	ctx context.Context, kind domhistory.Kind, subject, userID string, count int, results any,
) {
	if r == nil || r.writer == nil {
		return
	}
	log := logger.With(ctx, r.logger,
		zap.String("kind", string(kind)),
		zap.String("user_id", userID),
	)

	data, err := json.Marshal(results)
	if err != nil {
		r.fail(kind, log, "encode history results", err)
		return
	}

	entry, err := domhistory.New(kind, subject, userID, count, data, idempotency.KeyFromContext(ctx), r.now())
	if err != nil {
		r.fail(kind, log, "build history entry", err)
		return
	}

	written, err := r.writer.Create(ctx, &entry)
	if err != nil {
		r.fail(kind, log, "write history entry", err)
		return
	}
	if !written {
		log.Debug("History entry deduplicated by idempotency key")
	}
}

func (r *Recorder) fail(kind domhistory.Kind, log *zap.Logger, msg string, err error) {
	log.Warn(msg, zap.Error(err))
	if r.failures != nil {
		r.failures.WithLabelValues(string(kind)).Inc()
	}
}
