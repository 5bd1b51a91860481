package page

import "github.com/kailas-cloud/resumatch/internal/domain"

// Default pagination limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is one offset-paginated slice of a listing.
// NextOffset is nil on the last page.
type Page[T any] struct {
	Items      []T
	NextOffset *int
	Total      int
}

// New builds a page from the items found at offset out of total.
func New[T any](items []T, offset, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	p := Page[T]{Items: items, Total: total}
	if next := offset + len(items); len(items) > 0 && next < total {
		p.NextOffset = &next
	}
	return p
}

// Params is a validated offset/limit pair.
type Params struct {
	Offset int
	Limit  int
}

// NewParams validates offset and limit. A zero limit takes defaultLimit,
// a limit above maxLimit is clamped.
func NewParams(offset, limit, defaultLimit, maxLimit int) (Params, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if offset < 0 {
		return Params{}, domain.NewInvalidField("offset", "offset must be >= 0")
	}
	if limit < 0 {
		return Params{}, domain.NewInvalidField("limit", "limit must be >= 0")
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{Offset: offset, Limit: limit}, nil
}

// Map converts page items while keeping the pagination cursor.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return Page[U]{Items: items, NextOffset: p.NextOffset, Total: p.Total}
}
