package result

import "github.com/kailas-cloud/resumatch/internal/domain/relevance"

// Result is a single search hit.
type Result struct {
	resumeID string
	ownerID  string
	filename string
	score    float64
	tier     relevance.Tier
	snippets []string
}

// New creates a search result; the tier is derived from the score.
func New(resumeID, ownerID, filename string, score float64, snippets []string) Result {
	if snippets == nil {
		snippets = []string{}
	}
	return Result{
		resumeID: resumeID, ownerID: ownerID, filename: filename,
		score: score, tier: relevance.SearchTier(score), snippets: snippets,
	}
}

// ResumeID returns the matched resume identifier.
func (r *Result) ResumeID() string { return r.resumeID }

// OwnerID returns the resume owner's ID.
func (r *Result) OwnerID() string { return r.ownerID }

// Filename returns the resume upload filename.
func (r *Result) Filename() string { return r.filename }

// Score returns the Jaccard relevance score.
func (r *Result) Score() float64 { return r.score }

// Tier returns the relevance band.
func (r *Result) Tier() relevance.Tier { return r.tier }

// Snippets returns the best-matching sentences.
func (r *Result) Snippets() []string { return r.snippets }
