package relevance

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MinSentenceLength is the shortest trimmed sentence considered for a snippet (in runes).
const MinSentenceLength = 10

// minQueryTermLength is the shortest whitespace query term used for snippet scoring.
const minQueryTermLength = 3

// Snippets returns up to k sentences of text that best cover the query.
// Sentences with equal scores keep their order in the text.
func Snippets(text, query string, k int) []string {
	if k <= 0 {
		return []string{}
	}

	terms := queryTerms(query)
	sentences := splitSentences(text)

	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ranked[i] = scored{text: s, score: sentenceScore(s, terms)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, min(k, len(ranked)))
	for _, s := range ranked {
		if len(out) == k {
			break
		}
		if s.text == "" {
			continue
		}
		out = append(out, s.text)
	}
	return out
}

// splitSentences splits on '.', '!' and '?' and drops short fragments.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) < MinSentenceLength {
			continue
		}
		out = append(out, p)
	}
	return out
}

func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minQueryTermLength {
			out = append(out, f)
		}
	}
	return out
}

// sentenceScore is the share of query terms found in the sentence.
func sentenceScore(sentence string, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	words := strings.Fields(strings.ToLower(sentence))
	hits := 0
	for _, t := range terms {
		if containsEither(words, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
