package relevance

import (
	"strings"
	"unicode/utf8"
)

// MinKeywordLength is the shortest whitespace token treated as a keyword (in runes).
const MinKeywordLength = 4

// MaxEvidence caps the matched and missing keyword lists.
const MaxEvidence = 5

// KeywordMatch is the outcome of matching a job against one resume.
type KeywordMatch struct {
	Score   float64
	Matched []string
	Missing []string
}

// Keywords lower-cases text, splits it on whitespace and keeps tokens of
// at least MinKeywordLength runes. Order and duplicates are preserved and
// punctuation stays attached to the word.
func Keywords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinKeywordLength {
			out = append(out, f)
		}
	}
	return out
}

// MatchKeywords scores how much of jobText is covered by resumeText.
//
// A job keyword matches when some resume keyword contains it or is
// contained by it ("develop" matches "developer" and vice versa). The
// score is matched job keywords over all job keywords, counting repeated
// job keywords every time they occur, so a term repeated in the posting
// weighs more. Matched and Missing keep job-keyword order and hold at
// most MaxEvidence entries each.
func MatchKeywords(jobText, resumeText string) KeywordMatch {
	jobKW := Keywords(jobText)
	if len(jobKW) == 0 {
		return KeywordMatch{Matched: []string{}, Missing: []string{}}
	}
	resumeKW := distinct(Keywords(resumeText))

	matched := make([]string, 0, MaxEvidence)
	missing := make([]string, 0, MaxEvidence)
	hits := 0
	for _, kw := range jobKW {
		if containsEither(resumeKW, kw) {
			hits++
			if len(matched) < MaxEvidence {
				matched = append(matched, kw)
			}
			continue
		}
		if len(missing) < MaxEvidence {
			missing = append(missing, kw)
		}
	}

	return KeywordMatch{
		Score:   float64(hits) / float64(len(jobKW)),
		Matched: matched,
		Missing: missing,
	}
}

// containsEither reports whether any candidate contains term or is contained by it.
func containsEither(candidates []string, term string) bool {
	for _, c := range candidates {
		if strings.Contains(c, term) || strings.Contains(term, c) {
			return true
		}
	}
	return false
}

func distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
