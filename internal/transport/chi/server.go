package chi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/metrics"
	applicationuc "github.com/kailas-cloud/resumatch/internal/usecase/application"
	healthuc "github.com/kailas-cloud/resumatch/internal/usecase/health"
	historyuc "github.com/kailas-cloud/resumatch/internal/usecase/history"
	jobuc "github.com/kailas-cloud/resumatch/internal/usecase/job"
	matchuc "github.com/kailas-cloud/resumatch/internal/usecase/match"
	resumeuc "github.com/kailas-cloud/resumatch/internal/usecase/resume"
	searchuc "github.com/kailas-cloud/resumatch/internal/usecase/search"
)

// uploadField is the multipart field carrying the resume file.
const uploadField = "file"

// Services groups the use cases served over HTTP.
type Services struct {
	Resumes      *resumeuc.Service
	Jobs         *jobuc.Service
	Applications *applicationuc.Service
	Search       *searchuc.Service
	Match        *matchuc.Service
	History      *historyuc.Service
	Health       *healthuc.Service
}

// Server serves the resumatch HTTP API.
type Server struct {
	svc         Services
	idempotency IdempotencyStore
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

// WithIdempotency enables response replay for POST /search and POST /jobs/{id}/match.
func (s *Server) WithIdempotency(store IdempotencyStore) *Server {
	s.idempotency = store
	return s
}

// Router builds the route table behind the given middlewares.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", metrics.Handler())

	idem := IdempotencyMiddleware(s.idempotency, s.logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/resumes", func(r chi.Router) {
			r.Post("/", s.UploadResume)
			r.Get("/", s.ListResumes)
			r.Get("/{id}", s.GetResume)
			r.Delete("/{id}", s.DeleteResume)
		})
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", s.CreateJob)
			r.Get("/", s.ListJobs)
			r.Get("/{id}", s.GetJob)
			r.Delete("/{id}", s.DeleteJob)
			r.With(idem).Post("/{id}/match", s.MatchJob)
			r.Post("/{id}/applications", s.Apply)
			r.Get("/{id}/applications", s.ListApplications)
		})
		r.With(idem).Post("/search", s.Search)
		r.Get("/history", s.ListHistory)
		r.Get("/history/{id}", s.GetHistory)
	})
	return r
}

// caller returns the authenticated identity or writes 401.
func (s *Server) caller(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, domain.ErrUnauthorized.Error())
		return identity.Identity{}, false
	}
	return id, true
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v untouched.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, domain.ErrPayloadTooLarge.Error())
		return false
	}
	writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
	return false
}

// UploadResume handles POST /api/v1/resumes (multipart field "file").
func (s *Server) UploadResume(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "expected multipart/form-data")
		return
	}
	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid multipart body")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			writeFieldError(w, &domain.FieldError{
				Field: uploadField, Code: domain.CodeFieldRequired, Message: uploadField + " is required",
			})
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid multipart body")
			return
		}
		if part.FormName() != uploadField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		res, err := s.svc.Resumes.Upload(r.Context(), caller, part.FileName(), part)
		_ = part.Close()
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, resumeToResponse(res))
		return
	}
}

// ListResumes handles GET /api/v1/resumes.
func (s *Server) ListResumes(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	offset, limit, err := pageQuery(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	p, err := s.svc.Resumes.List(r.Context(), caller, offset, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(p, resumeToResponse))
}

// GetResume handles GET /api/v1/resumes/{id}.
func (s *Server) GetResume(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.svc.Resumes.Get(r.Context(), caller, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resumeWithContent(res))
}

// DeleteResume handles DELETE /api/v1/resumes/{id}.
func (s *Server) DeleteResume(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := s.svc.Resumes.Delete(r.Context(), caller, id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req CreateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	j, err := s.svc.Jobs.Create(r.Context(), caller, req.Title, req.Description, req.Requirements)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jobToResponse(j))
}

// ListJobs handles GET /api/v1/jobs.
func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.caller(w, r); !ok {
		return
	}
	offset, limit, err := pageQuery(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	p, err := s.svc.Jobs.List(r.Context(), offset, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(p, jobToResponse))
}

// GetJob handles GET /api/v1/jobs/{id}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.caller(w, r); !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	j, err := s.svc.Jobs.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobToResponse(j))
}

// DeleteJob handles DELETE /api/v1/jobs/{id}.
func (s *Server) DeleteJob(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := s.svc.Jobs.Delete(r.Context(), caller, id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MatchJob handles POST /api/v1/jobs/{id}/match.
func (s *Server) MatchJob(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	var req MatchRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	topN := 0
	if req.TopN != nil {
		if *req.TopN < 1 {
			writeFieldError(w, &domain.FieldError{
				Field: "top_n", Code: domain.CodeInvalidField, Message: "top_n must be a positive integer",
			})
			return
		}
		topN = *req.TopN
	}

	out, err := s.svc.Match.Match(r.Context(), caller, id, topN)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchToResponse(out))
}

// Apply handles POST /api/v1/jobs/{id}/applications.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	var req ApplyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	app, err := s.svc.Applications.Apply(r.Context(), caller, id, req.ResumeID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, applicationToResponse(app))
}

// ListApplications handles GET /api/v1/jobs/{id}/applications.
func (s *Server) ListApplications(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	offset, limit, err := pageQuery(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	p, err := s.svc.Applications.ListForJob(r.Context(), caller, id, offset, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(p, applicationToResponse))
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req SearchRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	k := 0
	if req.K != nil {
		if *req.K < 1 {
			writeFieldError(w, &domain.FieldError{
				Field: "k", Code: domain.CodeInvalidField, Message: "k must be a positive integer",
			})
			return
		}
		k = *req.K
	}

	out, err := s.svc.Search.Search(r.Context(), caller, req.Query, k)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchToResponse(out))
}

// ListHistory handles GET /api/v1/history.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	offset, limit, err := pageQuery(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	kind, err := stringQuery(r, "kind")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	p, err := s.svc.History.List(r.Context(), caller, kind, offset, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(p, historyToResponse))
}

// GetHistory handles GET /api/v1/history/{id}.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	e, err := s.svc.History.Get(r.Context(), caller, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyWithResults(e))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

