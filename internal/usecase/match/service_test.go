package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
	"github.com/kailas-cloud/resumatch/internal/domain/relevance"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
	"github.com/kailas-cloud/resumatch/internal/domain/role"
)

// --- Mocks ---

type mockJobs struct {
	jobs map[string]domjob.Job
}

func (m *mockJobs) Get(_ context.Context, id string) (domjob.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return domjob.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return j, nil
}

type mockCandidates struct {
	resumes []domresume.Resume
	err     error
	ownerID string
	called  bool
}

func (m *mockCandidates) Candidates(_ context.Context, ownerID string) ([]domresume.Resume, error) {
	m.called = true
	m.ownerID = ownerID
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domresume.Resume, 0, len(m.resumes))
	for _, r := range m.resumes {
		if ownerID == "" || r.OwnerID() == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockAuditor struct {
	kind    domhistory.Kind
	subject string
	count   int
	calls   int
}

func (m *mockAuditor) Record(_ context.Context, kind domhistory.Kind, subject, _ string, count int, _ any) {
	m.calls++
	m.kind, m.subject, m.count = kind, subject, count
}

func jobsFixture() *mockJobs {
	return &mockJobs{jobs: map[string]domjob.Job{
		"j1": domjob.Reconstruct("j1", "rita", "Senior Software Engineer", "", "5+ years Python Django", 1),
	}}
}

func resumeFixture(id, owner, content string, createdAt int64) domresume.Resume {
	return domresume.Reconstruct(id, owner, id+".txt", domresume.FormatTXT, content, createdAt)
}

var (
	alice     = identity.Identity{UserID: "alice", Role: role.User}
	recruiter = identity.Identity{UserID: "rita", Role: role.Recruiter}
)

// --- Tests ---

func TestMatch_SeniorEngineer(t *testing.T) {
	src := &mockCandidates{resumes: []domresume.Resume{
		resumeFixture("r1", "alice", "4 years Python, Django expert", 1),
		resumeFixture("r2", "bob", "Florist", 2),
	}}
	audit := &mockAuditor{}

	out, err := New(jobsFixture(), src, audit).Match(context.Background(), recruiter, "j1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Job.ID() != "j1" {
		t.Errorf("job = %q", out.Job.ID())
	}
	if len(out.Results) != 1 {
		t.Fatalf("results = %d, want 1 (zero scores dropped)", len(out.Results))
	}
	r := out.Results[0]
	if math.Abs(r.Score()-0.5) > 1e-12 || r.Recommendation() != relevance.Strong {
		t.Errorf("score=%v rec=%q", r.Score(), r.Recommendation())
	}
	if !reflect.DeepEqual(r.Evidence(), []string{"years", "python", "django"}) {
		t.Errorf("evidence = %q", r.Evidence())
	}
	if !reflect.DeepEqual(r.MissingRequirements(), []string{"senior", "software", "engineer"}) {
		t.Errorf("missing = %q", r.MissingRequirements())
	}
	if audit.calls != 1 || audit.kind != domhistory.KindMatch || audit.subject != "j1" || audit.count != 1 {
		t.Errorf("unexpected audit: %+v", audit)
	}
}

func TestMatch_UserSeesOnlyOwnResumes(t *testing.T) {
	src := &mockCandidates{resumes: []domresume.Resume{
		resumeFixture("r1", "alice", "python django", 1),
		resumeFixture("r2", "bob", "python django", 2),
	}}

	out, err := New(jobsFixture(), src, nil).Match(context.Background(), alice, "j1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.ownerID != "alice" || len(out.Results) != 1 || out.Results[0].ResumeID() != "r1" {
		t.Errorf("owner=%q results=%+v", src.ownerID, out.Results)
	}
}

func TestMatch_TopNClampedAndOrdered(t *testing.T) {
	resumes := make([]domresume.Resume, 0, 30)
	for i := range 30 {
		content := "python"
		if i%2 == 1 {
			content = "python django senior"
		}
		resumes = append(resumes, resumeFixture(fmt.Sprintf("r%02d", i), "alice", content, int64(i)))
	}

	out, err := New(jobsFixture(), &mockCandidates{resumes: resumes}, nil).
		Match(context.Background(), recruiter, "j1", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != MaxTopN {
		t.Fatalf("results = %d, want %d", len(out.Results), MaxTopN)
	}
	for i := 1; i < len(out.Results); i++ {
		if out.Results[i].Score() > out.Results[i-1].Score() {
			t.Fatalf("scores not non-increasing at %d", i)
		}
	}
	// 15 stronger resumes first, in retrieval order.
	if out.Results[0].ResumeID() != "r01" || out.Results[15].ResumeID() != "r00" {
		t.Errorf("order: first=%s sixteenth=%s", out.Results[0].ResumeID(), out.Results[15].ResumeID())
	}
}

func TestMatch_EvidenceRedactedForUser(t *testing.T) {
	jobs := &mockJobs{jobs: map[string]domjob.Job{
		"j2": domjob.Reconstruct("j2", "rita", "Engineer", "mail jobs@acme.com", "", 1),
	}}
	src := &mockCandidates{resumes: []domresume.Resume{resumeFixture("r1", "alice", "engineer", 1)}}

	out, err := New(jobs, src, nil).Match(context.Background(), alice, "j2", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	missing := out.Results[0].MissingRequirements()
	if !reflect.DeepEqual(missing, []string{"mail", relevance.EmailPlaceholder}) {
		t.Errorf("missing = %q", missing)
	}

	out, err = New(jobs, src, nil).Match(context.Background(), recruiter, "j2", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Results[0].MissingRequirements(); got[1] != "jobs@acme.com" {
		t.Errorf("recruiter missing = %q", got)
	}
}

func TestMatch_JobNotFound(t *testing.T) {
	src := &mockCandidates{}
	_, err := New(jobsFixture(), src, nil).Match(context.Background(), recruiter, "nope", 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if src.called {
		t.Error("candidates must not load for a missing job")
	}
}

func TestMatch_Validation(t *testing.T) {
	svc := New(jobsFixture(), &mockCandidates{}, nil)

	_, err := svc.Match(context.Background(), recruiter, " ", 0)
	var fe *domain.FieldError
	if !errors.As(err, &fe) || fe.Field != "job_id" || fe.Code != domain.CodeFieldRequired {
		t.Errorf("blank job id: %v", err)
	}

	_, err = svc.Match(context.Background(), recruiter, "j1", -1)
	if !errors.As(err, &fe) || fe.Field != "top_n" || fe.Code != domain.CodeInvalidField {
		t.Errorf("negative top_n: %v", err)
	}
}

func TestMatch_StorageError(t *testing.T) {
	audit := &mockAuditor{}
	_, err := New(jobsFixture(), &mockCandidates{err: errors.New("db down")}, audit).
		Match(context.Background(), recruiter, "j1", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if audit.calls != 0 {
		t.Error("failed matches must not be audited")
	}
}
