package relevance

import (
	"regexp"

	"github.com/kailas-cloud/resumatch/internal/domain/role"
)

// Redaction placeholders.
const (
	EmailPlaceholder = "[EMAIL REDACTED]"
	PhonePlaceholder = "[PHONE REDACTED]"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// Unanchored: extracted PDF text often glues numbers to labels ("Mobile555-123-4567").
	phoneRe = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)
)

// Redact masks emails and phone numbers unless the role may see personal data.
// Privileged roles get text back unchanged.
func Redact(text string, r role.Role) string {
	if r.SeesPII() {
		return text
	}
	return RedactPII(text)
}

// RedactPII masks emails and phone numbers regardless of role.
func RedactPII(text string) string {
	text = emailRe.ReplaceAllLiteralString(text, EmailPlaceholder)
	return phoneRe.ReplaceAllLiteralString(text, PhonePlaceholder)
}

// RedactAll applies Redact to every element, returning a new slice.
func RedactAll(texts []string, r role.Role) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Redact(t, r)
	}
	return out
}
