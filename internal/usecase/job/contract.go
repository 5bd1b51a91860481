package job

import (
	"context"

	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
)

// Repository persists job postings.
type Repository interface {
	Create(ctx context.Context, j *domjob.Job) error
	Get(ctx context.Context, id string) (domjob.Job, error)
	List(ctx context.Context, offset, limit int) ([]domjob.Job, int, error)
	Delete(ctx context.Context, id string) error
}
