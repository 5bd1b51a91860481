package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/resumatch/internal/domain/relevance"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
	"github.com/kailas-cloud/resumatch/internal/ingest"
)

// scoredFile is one resume file in the score command output.
type scoredFile struct {
	File           string   `json:"file"`
	SearchScore    *float64 `json:"search_score,omitempty"`
	Tier           string   `json:"tier,omitempty"`
	Snippets       []string `json:"snippets,omitempty"`
	MatchScore     *float64 `json:"match_score,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Matched        []string `json:"matched_keywords,omitempty"`
	Missing        []string `json:"missing_keywords,omitempty"`
}

type scoreReport struct {
	Query   string       `json:"query,omitempty"`
	JobFile string       `json:"job_file,omitempty"`
	Results []scoredFile `json:"results"`
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "Score local resume files against a query and/or a job description",
		ArgsUsage: "RESUME_FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free-text search query"},
			&cli.StringFlag{Name: "job-file", Aliases: []string{"j"}, Usage: "Plain-text job description file"},
			&cli.IntFlag{Name: "snippets", Value: 3, Usage: "Snippets per result for --query"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one resume file is required")
			}
			query := c.String("query")
			var jobText string
			if path := c.String("job-file"); path != "" {
				data, err := os.ReadFile(filepath.Clean(path))
				if err != nil {
					return fmt.Errorf("read job file: %w", err)
				}
				jobText = string(data)
			}
			if query == "" && jobText == "" {
				return errors.New("--query or --job-file is required")
			}

			report, err := scoreFiles(c.Args().Slice(), query, jobText, c.Int("snippets"))
			if err != nil {
				return err
			}
			report.JobFile = c.String("job-file")

			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(report) //nolint:wrapcheck // stdout
		},
	}
}

// scoreFiles extracts each resume and scores it. Files rank by match score
// when a job is given, otherwise by search score. Nothing is filtered out.
func scoreFiles(paths []string, query, jobText string, snippets int) (scoreReport, error) {
	extractor := ingest.New()
	queryTokens := relevance.Tokenize(query)

	scored := make([]relevance.Scored[scoredFile], 0, len(paths))
	for _, path := range paths {
		content, err := extractFile(extractor, path)
		if err != nil {
			return scoreReport{}, err
		}

		sf := scoredFile{File: path}
		var rankBy float64
		if query != "" {
			s := relevance.Jaccard(queryTokens, relevance.Tokenize(content))
			sf.SearchScore = &s
			sf.Tier = string(relevance.SearchTier(s))
			sf.Snippets = relevance.Snippets(content, query, snippets)
			rankBy = s
		}
		if jobText != "" {
			m := relevance.MatchKeywords(jobText, content)
			sf.MatchScore = &m.Score
			sf.Recommendation = string(relevance.Recommend(m.Score))
			sf.Matched = m.Matched
			sf.Missing = m.Missing
			rankBy = m.Score
		}
		scored = append(scored, relevance.Scored[scoredFile]{Item: sf, Score: rankBy})
	}

	ranked := relevance.Rank(scored, func(float64) bool { return true }, 0)
	out := scoreReport{Query: query, Results: make([]scoredFile, len(ranked))}
	for i, r := range ranked {
		out.Results[i] = r.Item
	}
	return out, nil
}

func extractFile(e *ingest.Extractor, path string) (string, error) {
	format, err := domresume.FormatOf(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	content, err := e.Extract(format, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return content, nil
}
