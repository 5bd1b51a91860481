package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultK       = 10
	MaxK           = 100
)

// Request is a validated free-text search query.
type Request struct {
	query string
	k     int
}

// New validates and normalizes search parameters. A zero k takes defaultK;
// k above maxK is rejected. Non-positive defaultK/maxK fall back to the
// package defaults.
func New(query string, k, defaultK, maxK int) (Request, error) {
	if defaultK <= 0 {
		defaultK = DefaultK
	}
	if maxK <= 0 {
		maxK = MaxK
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.NewFieldRequired("query")
	}
	if len(query) > MaxQueryLength {
		return Request{}, domain.NewInvalidField("query", fmt.Sprintf("query too long (max %d chars)", MaxQueryLength))
	}
	if k == 0 {
		k = min(defaultK, maxK)
	}
	if k < 1 || k > maxK {
		return Request{}, domain.NewInvalidField("k", fmt.Sprintf("k must be between 1 and %d", maxK))
	}

	return Request{query: query, k: k}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// K returns the maximum number of results.
func (r *Request) K() int { return r.k }
