package history

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/domain/page"
)

// Service exposes the audit trail of searches and matches.
type Service struct {
	repo         Repository
	defaultLimit int
	maxLimit     int
}

// New creates a history service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultLimit: page.DefaultLimit, maxLimit: page.MaxLimit}
}

// WithPagination sets list limits.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	s.defaultLimit = defaultLimit
	s.maxLimit = maxLimit
	return s
}

// List pages through history entries, newest first. Admins see every
// user's entries; everyone else sees their own. An empty kind lists both.
func (s *Service) List(
	ctx context.Context, caller identity.Identity, kind string, offset, limit int,
) (page.Page[domhistory.Entry], error) {
	k, err := domhistory.ParseKind(kind)
	if err != nil {
		return page.Page[domhistory.Entry]{}, err
	}
	params, err := page.NewParams(offset, limit, s.defaultLimit, s.maxLimit)
	if err != nil {
		return page.Page[domhistory.Entry]{}, err
	}

	userID := caller.UserID
	if caller.IsAdmin() {
		userID = ""
	}
	items, total, err := s.repo.List(ctx, userID, k, params.Offset, params.Limit)
	if err != nil {
		return page.Page[domhistory.Entry]{}, fmt.Errorf("list history: %w", err)
	}
	return page.New(items, params.Offset, total), nil
}

// Get returns one entry with its stored result set.
func (s *Service) Get(ctx context.Context, caller identity.Identity, id string) (domhistory.Entry, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return domhistory.Entry{}, fmt.Errorf("get history: %w", err)
	}
	if !caller.IsAdmin() && !caller.Owns(e.UserID()) {
		return domhistory.Entry{}, fmt.Errorf("history %s: %w", id, domain.ErrForbidden)
	}
	return e, nil
}
