// Package ingest turns uploaded resume files into plain text.
package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
)

// Extractor converts raw upload bytes into text, dispatching on format.
type Extractor struct{}

// New creates an extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns the text of a document. Unparseable input wraps
// domain.ErrUnsupportedFormat.
func (e *Extractor) Extract(format domresume.Format, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case domresume.FormatTXT:
		text = plainText(data)
	case domresume.FormatDOCX:
		text, err = docxText(data)
	case domresume.FormatPDF:
		text, err = pdfText(data)
	default:
		return "", fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w: %w", format, domain.ErrUnsupportedFormat, err)
	}
	return normalizeWhitespace(text), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func plainText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}

// normalizeWhitespace collapses runs of spaces inside lines and drops blank
// lines, keeping sentence punctuation intact for snippet extraction.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
