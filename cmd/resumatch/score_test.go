package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScoreFiles_Query(t *testing.T) {
	dir := t.TempDir()
	goDev := writeFile(t, dir, "go.txt", "Go developer. Builds Kubernetes operators.")
	cook := writeFile(t, dir, "cook.txt", "Pastry chef. Bakes bread daily.")

	report, err := scoreFiles([]string{cook, goDev}, "go kubernetes", "", 2)
	if err != nil {
		t.Fatalf("scoreFiles: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	top := report.Results[0]
	if top.File != goDev {
		t.Errorf("top = %s, want %s", top.File, goDev)
	}
	if top.SearchScore == nil || *top.SearchScore <= 0 {
		t.Errorf("expected positive search score, got %v", top.SearchScore)
	}
	if len(top.Snippets) == 0 {
		t.Error("expected snippets for the matching resume")
	}
	if top.MatchScore != nil {
		t.Error("match score must be absent without a job")
	}
	// Non-matching files are still listed.
	if bottom := report.Results[1]; bottom.SearchScore == nil || *bottom.SearchScore != 0 {
		t.Errorf("expected zero score for %s, got %v", bottom.File, bottom.SearchScore)
	}
}

func TestScoreFiles_Job(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "alice.txt", "Senior golang engineer with postgres experience")

	report, err := scoreFiles([]string{path}, "", "golang postgres kafka", 3)
	if err != nil {
		t.Fatalf("scoreFiles: %v", err)
	}
	got := report.Results[0]
	if got.MatchScore == nil {
		t.Fatal("expected match score")
	}
	// golang and postgres match, kafka is missing
	if *got.MatchScore < 0.66 || *got.MatchScore > 0.67 {
		t.Errorf("match score = %v, want 2/3", *got.MatchScore)
	}
	if got.Recommendation != "strong" {
		t.Errorf("recommendation = %q, want strong", got.Recommendation)
	}
	if len(got.Missing) != 1 || got.Missing[0] != "kafka" {
		t.Errorf("missing = %v, want [kafka]", got.Missing)
	}
}

func TestScoreFiles_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "resume.rtf", "text")

	_, err := scoreFiles([]string{path}, "go", "", 1)
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestScoreCommand_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "Go developer.")

	var out bytes.Buffer
	app := &cli.App{Writer: &out, Commands: []*cli.Command{scoreCommand()}}
	if err := app.Run([]string{"resumatch", "score", "--query", "go", path}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var report scoreReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if report.Query != "go" || len(report.Results) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestScoreCommand_RequiresInput(t *testing.T) {
	app := &cli.App{Writer: &bytes.Buffer{}, Commands: []*cli.Command{scoreCommand()}}

	if err := app.Run([]string{"resumatch", "score"}); err == nil {
		t.Error("expected error without files")
	}
	if err := app.Run([]string{"resumatch", "score", "x.txt"}); err == nil {
		t.Error("expected error without --query or --job-file")
	}
}
