package history

import (
	"context"

	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
)

// Repository reads history entries.
type Repository interface {
	Get(ctx context.Context, id string) (domhistory.Entry, error)
	List(ctx context.Context, userID string, kind domhistory.Kind, offset, limit int) ([]domhistory.Entry, int, error)
}
