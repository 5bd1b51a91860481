package job

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

func TestNew(t *testing.T) {
	j, err := New("r1", "  Senior Software Engineer ", "Build services", "5+ years Python Django", time.UnixMilli(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.ID() == "" {
		t.Error("ID() is empty")
	}
	if j.Title() != "Senior Software Engineer" {
		t.Errorf("Title() = %q", j.Title())
	}
	if j.CreatedAt() != 42 {
		t.Errorf("CreatedAt() = %d", j.CreatedAt())
	}
	want := "Senior Software Engineer Build services 5+ years Python Django"
	if j.CombinedText() != want {
		t.Errorf("CombinedText() = %q", j.CombinedText())
	}
}

func TestNew_OptionalRequirements(t *testing.T) {
	j, err := New("r1", "Title", "Desc", "", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.CombinedText() != "Title Desc " {
		t.Errorf("CombinedText() = %q", j.CombinedText())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name, recruiter, title, desc, req string
		field                             string
	}{
		{"no recruiter", "", "t", "d", "", "recruiter_id"},
		{"no title", "r1", " ", "d", "", "title"},
		{"no description", "r1", "t", "", "", "description"},
		{"long title", "r1", strings.Repeat("t", MaxTitleLength+1), "d", "", "title"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.recruiter, tc.title, tc.desc, tc.req, time.Now())
			var fe *domain.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FieldError", err)
			}
			if fe.Field != tc.field {
				t.Errorf("Field = %q, want %q", fe.Field, tc.field)
			}
		})
	}
}
