package application

import (
	"context"

	domapp "github.com/kailas-cloud/resumatch/internal/domain/application"
	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
)

// Repository persists applications.
type Repository interface {
	Create(ctx context.Context, a *domapp.Application) error
	ListByJob(ctx context.Context, jobID string, offset, limit int) ([]domapp.Application, int, error)
}

// JobReader loads job postings.
type JobReader interface {
	Get(ctx context.Context, id string) (domjob.Job, error)
}

// ResumeReader loads resumes.
type ResumeReader interface {
	Get(ctx context.Context, id string) (domresume.Resume, error)
}
