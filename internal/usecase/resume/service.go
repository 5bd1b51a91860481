package resume

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/domain/page"
	"github.com/kailas-cloud/resumatch/internal/domain/relevance"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
	"github.com/kailas-cloud/resumatch/internal/metrics"
)

// DefaultMaxUploadBytes bounds an upload body.
const DefaultMaxUploadBytes int64 = 10 << 20

// Service handles resume upload and retrieval.
type Service struct {
	repo         Repository
	extractor    Extractor
	maxBytes     int64
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// New creates a resume service.
func New(repo Repository, extractor Extractor) *Service {
	return &Service{
		repo:         repo,
		extractor:    extractor,
		maxBytes:     DefaultMaxUploadBytes,
		defaultLimit: page.DefaultLimit,
		maxLimit:     page.MaxLimit,
		now:          time.Now,
	}
}

// WithMaxUploadBytes overrides the upload size limit.
func (s *Service) WithMaxUploadBytes(n int64) *Service {
	if n > 0 {
		s.maxBytes = n
	}
	return s
}

// WithPagination sets list limits.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	s.defaultLimit = defaultLimit
	s.maxLimit = maxLimit
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Upload extracts the text of an uploaded file and stores it for caller.
// The returned resume carries content redacted for the caller's role.
func (s *Service) Upload(
	ctx context.Context, caller identity.Identity, filename string, body io.Reader,
) (domresume.Resume, error) {
	format, err := domresume.FormatOf(filename)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("unknown", "rejected").Inc()
		return domresume.Resume{}, err
	}

	res, err := s.upload(ctx, caller, filename, format, body)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(string(format), "rejected").Inc()
		return domresume.Resume{}, err
	}
	metrics.UploadsTotal.WithLabelValues(string(format), "ok").Inc()
	return res.WithContent(relevance.Redact(res.Content(), caller.Role)), nil
}

func (s *Service) upload(
	ctx context.Context, caller identity.Identity, filename string, format domresume.Format, body io.Reader,
) (domresume.Resume, error) {
	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return domresume.Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if n > s.maxBytes {
		return domresume.Resume{}, fmt.Errorf("upload exceeds %d bytes: %w", s.maxBytes, domain.ErrPayloadTooLarge)
	}

	text, err := s.extractor.Extract(format, buf.Bytes())
	if err != nil {
		return domresume.Resume{}, err
	}

	res, err := domresume.New(caller.UserID, filename, text, s.now())
	if err != nil {
		return domresume.Resume{}, err
	}
	if err := s.repo.Create(ctx, &res); err != nil {
		return domresume.Resume{}, fmt.Errorf("create resume: %w", err)
	}
	return res, nil
}

// Get returns a resume visible to caller with content redacted by role.
func (s *Service) Get(ctx context.Context, caller identity.Identity, id string) (domresume.Resume, error) {
	res, err := s.repo.Get(ctx, id)
	if err != nil {
		return domresume.Resume{}, fmt.Errorf("get resume: %w", err)
	}
	if !caller.Role.SeesAllResumes() && !caller.Owns(res.OwnerID()) {
		return domresume.Resume{}, fmt.Errorf("resume %s: %w", id, domain.ErrForbidden)
	}
	return res.WithContent(relevance.Redact(res.Content(), caller.Role)), nil
}

// List pages through resumes visible to caller, newest first.
func (s *Service) List(
	ctx context.Context, caller identity.Identity, offset, limit int,
) (page.Page[domresume.Resume], error) {
	params, err := page.NewParams(offset, limit, s.defaultLimit, s.maxLimit)
	if err != nil {
		return page.Page[domresume.Resume]{}, err
	}

	ownerID := caller.UserID
	if caller.Role.SeesAllResumes() {
		ownerID = ""
	}
	items, total, err := s.repo.List(ctx, ownerID, params.Offset, params.Limit)
	if err != nil {
		return page.Page[domresume.Resume]{}, fmt.Errorf("list resumes: %w", err)
	}
	for i := range items {
		items[i] = items[i].WithContent(relevance.Redact(items[i].Content(), caller.Role))
	}
	return page.New(items, params.Offset, total), nil
}

// Delete removes a resume. Only its owner or an admin may delete it.
func (s *Service) Delete(ctx context.Context, caller identity.Identity, id string) error {
	res, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get resume: %w", err)
	}
	if !caller.IsAdmin() && !caller.Owns(res.OwnerID()) {
		return fmt.Errorf("resume %s: %w", id, domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}
