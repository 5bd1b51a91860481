package resume

import (
	"context"

	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
)

// Repository persists resumes.
type Repository interface {
	Create(ctx context.Context, r *domresume.Resume) error
	Get(ctx context.Context, id string) (domresume.Resume, error)
	List(ctx context.Context, ownerID string, offset, limit int) ([]domresume.Resume, int, error)
	Delete(ctx context.Context, id string) error
}

// Extractor turns upload bytes into text.
type Extractor interface {
	Extract(format domresume.Format, data []byte) (string, error)
}
