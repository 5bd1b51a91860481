package history

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

func TestNew(t *testing.T) {
	e, err := New(KindSearch, "python developer", "u1", 2, []byte(`[{"resume_id":"a"}]`), "key-1", time.UnixMilli(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID() == "" || e.Kind() != KindSearch || e.Subject() != "python developer" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.ResultCount() != 2 || e.IdempotencyKey() != "key-1" || e.CreatedAt() != 5 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestNew_EmptyResultsBecomeEmptyArray(t *testing.T) {
	e, err := New(KindMatch, "job-1", "u1", 0, nil, "", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(e.Results()) != "[]" {
		t.Errorf("Results() = %s", e.Results())
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New("bogus", "q", "u1", 0, nil, "", time.Now()); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad kind: err = %v", err)
	}
	if _, err := New(KindSearch, "q", "", 0, nil, "", time.Now()); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("no user: err = %v", err)
	}
	long := strings.Repeat("k", MaxIdempotencyKeyLength+1)
	if _, err := New(KindSearch, "q", "u1", 0, nil, long, time.Now()); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("long key: err = %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(""); err != nil || k != "" {
		t.Errorf("ParseKind(\"\") = %q, %v", k, err)
	}
	if k, err := ParseKind("match"); err != nil || k != KindMatch {
		t.Errorf("ParseKind(match) = %q, %v", k, err)
	}
	var fe *domain.FieldError
	if _, err := ParseKind("other"); !errors.As(err, &fe) || fe.Field != "kind" {
		t.Errorf("ParseKind(other) err = %v", err)
	}
}
