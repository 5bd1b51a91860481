package relevance

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token kept by Tokenize (in runes).
const MinTokenLength = 3

// stopWords is the closed set of articles, conjunctions and prepositions
// dropped before scoring.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// Tokenize lower-cases text, splits it on runs of non-alphanumeric
// characters and drops short tokens and stop-words.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	lowered := strings.ToLower(norm.NFKC.String(text))
	fields := strings.FieldsFunc(lowered, isSeparator)

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTokenLength {
			continue
		}
		if IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// IsStopWord reports whether w (already lower-cased) is in the stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
