package result

import (
	"testing"

	"github.com/kailas-cloud/resumatch/internal/domain/relevance"
)

func TestNew(t *testing.T) {
	r := New("res-1", "u1", "cv.txt", 0.5, []string{"Experienced Python developer"})

	if r.ResumeID() != "res-1" || r.OwnerID() != "u1" || r.Filename() != "cv.txt" {
		t.Errorf("unexpected ids: %+v", r)
	}
	if r.Score() != 0.5 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.Tier() != relevance.TierHigh {
		t.Errorf("Tier() = %q", r.Tier())
	}
	if len(r.Snippets()) != 1 {
		t.Errorf("Snippets() = %v", r.Snippets())
	}
}

func TestNew_NilSnippets(t *testing.T) {
	r := New("id", "u", "f", 0.02, nil)
	if r.Snippets() == nil {
		t.Error("Snippets() = nil, want empty slice")
	}
	if r.Tier() != relevance.TierLow {
		t.Errorf("Tier() = %q", r.Tier())
	}
}
