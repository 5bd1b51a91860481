package job

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/resumatch/internal/db/sqldb"
	"github.com/kailas-cloud/resumatch/internal/domain"
	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
)

func TestCreateGetDelete(t *testing.T) {
	r := New(sqldb.OpenTest(t))
	ctx := context.Background()

	j := domjob.Reconstruct("j1", "r1", "Senior Software Engineer", "Build things", "5+ years Python Django", 5)
	if err := r.Create(ctx, &j); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := r.Get(ctx, "j1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CombinedText() != j.CombinedText() || got.RecruiterID() != "r1" || got.CreatedAt() != 5 {
		t.Errorf("unexpected job: %+v", got)
	}

	if err := r.Delete(ctx, "j1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.Get(ctx, "j1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get after delete err = %v", err)
	}
	if err := r.Delete(ctx, "j1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete missing err = %v", err)
	}
}

func TestList(t *testing.T) {
	r := New(sqldb.OpenTest(t))
	ctx := context.Background()
	for i, id := range []string{"a", "b", "c"} {
		j := domjob.Reconstruct(id, "r1", "t", "d", "", int64(i))
		if err := r.Create(ctx, &j); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	jobs, total, err := r.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(jobs) != 2 || jobs[0].ID() != "c" || jobs[1].ID() != "b" {
		t.Errorf("total=%d jobs=%+v", total, jobs)
	}
}
