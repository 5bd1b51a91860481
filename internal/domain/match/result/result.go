package result

import "github.com/kailas-cloud/resumatch/internal/domain/relevance"

// Result is a single resume ranked against a job.
type Result struct {
	resumeID       string
	ownerID        string
	filename       string
	score          float64
	recommendation relevance.Recommendation
	evidence       []string
	missing        []string
}

// New creates a match result from a keyword match; the recommendation is
// derived from the score.
func New(resumeID, ownerID, filename string, m relevance.KeywordMatch) Result {
	evidence, missing := m.Matched, m.Missing
	if evidence == nil {
		evidence = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return Result{
		resumeID: resumeID, ownerID: ownerID, filename: filename,
		score: m.Score, recommendation: relevance.Recommend(m.Score),
		evidence: evidence, missing: missing,
	}
}

// ResumeID returns the ranked resume identifier.
func (r *Result) ResumeID() string { return r.resumeID }

// OwnerID returns the resume owner's ID.
func (r *Result) OwnerID() string { return r.ownerID }

// Filename returns the resume upload filename.
func (r *Result) Filename() string { return r.filename }

// Score returns the keyword-overlap score.
func (r *Result) Score() float64 { return r.score }

// Recommendation returns the coarse verdict.
func (r *Result) Recommendation() relevance.Recommendation { return r.recommendation }

// Evidence returns up to relevance.MaxEvidence matched job keywords.
func (r *Result) Evidence() []string { return r.evidence }

// MissingRequirements returns up to relevance.MaxEvidence unmatched job keywords.
func (r *Result) MissingRequirements() []string { return r.missing }

// WithEvidence returns a copy with replaced evidence lists (used for read-time redaction).
func (r *Result) WithEvidence(evidence, missing []string) Result {
	c := *r
	c.evidence = evidence
	c.missing = missing
	return c
}
