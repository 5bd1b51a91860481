package relevance

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"drops short tokens and stop-words", "The Python developer, with 5 years in Go!", []string{"python", "developer", "years"}},
		{"punctuation separates", "C++ and C# experts", []string{"experts"}},
		{"keeps duplicates and order", "Java java JAVA", []string{"java", "java", "java"}},
		{"digits are word characters", "Built 2020 PostgreSQL clusters", []string{"built", "2020", "postgresql", "clusters"}},
		{"unicode normalisation", "Ｐｙｔｈｏｎ engineer", []string{"python", "engineer"}},
		{"only separators", "--- ... !!!", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokenize_NoStopWordsOrShortTokens(t *testing.T) {
	text := "the a an and or but in on at to for of with by The AND With"
	if got := Tokenize(text); len(got) != 0 {
		t.Errorf("expected no tokens, got %q", got)
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("with") {
		t.Error("expected 'with' to be a stop-word")
	}
	if IsStopWord("python") {
		t.Error("'python' is not a stop-word")
	}
}
