package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("  python developer ", 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "python developer" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.K() != DefaultK {
		t.Errorf("K() = %d, want %d", r.K(), DefaultK)
	}
}

func TestNew_ExplicitK(t *testing.T) {
	r, err := New("python", 100, 10, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.K() != 100 {
		t.Errorf("K() = %d", r.K())
	}
}

func TestNew_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   "} {
		_, err := New(q, 10, 10, 100)
		var fe *domain.FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("New(%q): err = %v, want *FieldError", q, err)
		}
		if fe.Field != "query" || fe.Code != domain.CodeFieldRequired {
			t.Errorf("got field=%q code=%q", fe.Field, fe.Code)
		}
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxQueryLength+1), 10, 10, 100)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_KOutOfRange(t *testing.T) {
	for _, k := range []int{-1, 101} {
		_, err := New("python", k, 10, 100)
		var fe *domain.FieldError
		if !errors.As(err, &fe) || fe.Field != "k" || fe.Code != domain.CodeInvalidField {
			t.Errorf("k=%d: err = %v", k, err)
		}
	}
}

func TestNew_DefaultAboveMaxIsClamped(t *testing.T) {
	r, err := New("python", 0, 50, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.K() != 20 {
		t.Errorf("K() = %d, want 20", r.K())
	}
}
