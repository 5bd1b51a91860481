package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// MaxIdempotencyKeyLength bounds client-supplied idempotency keys.
const MaxIdempotencyKeyLength = 255

// Kind distinguishes the ranking pipeline that produced an entry.
type Kind string

// Entry kinds.
const (
	KindSearch Kind = "search"
	KindMatch  Kind = "match"
)

// IsValid reports whether the kind is known.
func (k Kind) IsValid() bool { return k == KindSearch || k == KindMatch }

// ParseKind converts a filter value; empty means "any kind".
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return "", nil
	}
	k := Kind(s)
	if !k.IsValid() {
		return "", domain.NewInvalidField("kind", fmt.Sprintf("kind must be %q or %q", KindSearch, KindMatch))
	}
	return k, nil
}

// Entry is an audit record of one ranking run together with its serialized results.
type Entry struct {
	id             string
	kind           Kind
	subject        string
	userID         string
	resultCount    int
	results        json.RawMessage
	idempotencyKey string
	createdAt      int64
}

// New creates an Entry with a fresh ID. Subject is the query text for
// searches and the job ID for matches.
func New(
	kind Kind, subject, userID string, resultCount int, results json.RawMessage,
	idempotencyKey string, now time.Time,
) (Entry, error) {
	if !kind.IsValid() {
		return Entry{}, fmt.Errorf("invalid history kind %q: %w", kind, domain.ErrValidation)
	}
	if userID == "" {
		return Entry{}, domain.NewFieldRequired("user_id")
	}
	if len(idempotencyKey) > MaxIdempotencyKeyLength {
		return Entry{}, domain.NewInvalidField("Idempotency-Key",
			fmt.Sprintf("idempotency key too long (max %d)", MaxIdempotencyKeyLength))
	}
	if len(results) == 0 {
		results = json.RawMessage("[]")
	}
	return Entry{
		id:             ksuid.New().String(),
		kind:           kind,
		subject:        subject,
		userID:         userID,
		resultCount:    resultCount,
		results:        results,
		idempotencyKey: idempotencyKey,
		createdAt:      now.UnixMilli(),
	}, nil
}

// Reconstruct creates an Entry without validation (storage hydration).
func Reconstruct(
	id string, kind Kind, subject, userID string, resultCount int,
	results json.RawMessage, idempotencyKey string, createdAt int64,
) Entry {
	return Entry{
		id: id, kind: kind, subject: subject, userID: userID, resultCount: resultCount,
		results: results, idempotencyKey: idempotencyKey, createdAt: createdAt,
	}
}

// ID returns the entry identifier.
func (e *Entry) ID() string { return e.id }

// Kind returns the pipeline kind.
func (e *Entry) Kind() Kind { return e.kind }

// Subject returns the query text or job ID.
func (e *Entry) Subject() string { return e.subject }

// UserID returns the caller that ran the pipeline.
func (e *Entry) UserID() string { return e.userID }

// ResultCount returns the number of ranked results.
func (e *Entry) ResultCount() int { return e.resultCount }

// Results returns the serialized ranked result set.
func (e *Entry) Results() json.RawMessage { return e.results }

// IdempotencyKey returns the client key the run was recorded under, if any.
func (e *Entry) IdempotencyKey() string { return e.idempotencyKey }

// CreatedAt returns the run time in unix millis.
func (e *Entry) CreatedAt() int64 { return e.createdAt }
