package result

import (
	"testing"

	"github.com/kailas-cloud/resumatch/internal/domain/relevance"
)

func TestNew(t *testing.T) {
	m := relevance.KeywordMatch{Score: 0.5, Matched: []string{"python"}, Missing: []string{"senior"}}
	r := New("res-1", "u1", "cv.pdf", m)

	if r.Recommendation() != relevance.Strong {
		t.Errorf("Recommendation() = %q", r.Recommendation())
	}
	if r.Evidence()[0] != "python" || r.MissingRequirements()[0] != "senior" {
		t.Errorf("evidence=%v missing=%v", r.Evidence(), r.MissingRequirements())
	}
}

func TestNew_NilEvidence(t *testing.T) {
	r := New("res-1", "u1", "cv.pdf", relevance.KeywordMatch{Score: 0.05})
	if r.Evidence() == nil || r.MissingRequirements() == nil {
		t.Error("evidence lists must be non-nil")
	}
	if r.Recommendation() != relevance.Weak {
		t.Errorf("Recommendation() = %q", r.Recommendation())
	}
}

func TestWithEvidence(t *testing.T) {
	r := New("res-1", "u1", "cv.pdf", relevance.KeywordMatch{Score: 0.2, Matched: []string{"a@b.io"}})
	c := r.WithEvidence([]string{"x"}, []string{"y"})
	if c.Evidence()[0] != "x" || r.Evidence()[0] != "a@b.io" {
		t.Error("WithEvidence must not mutate the original")
	}
	if c.Score() != 0.2 || c.Recommendation() != relevance.Moderate {
		t.Errorf("copy lost score: %+v", c)
	}
}
