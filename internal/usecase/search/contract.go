package search

import (
	"context"

	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
)

// CandidateSource loads resumes in retrieval order. An empty ownerID means every owner.
type CandidateSource interface {
	Candidates(ctx context.Context, ownerID string) ([]domresume.Resume, error)
}

// Auditor records a ranking run. It never fails the caller.
type Auditor interface {
	Record(ctx context.Context, kind domhistory.Kind, subject, userID string, count int, results any)
}
