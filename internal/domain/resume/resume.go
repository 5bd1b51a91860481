package resume

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// MaxFilenameLength is the longest accepted upload filename in bytes.
const MaxFilenameLength = 255

// Format is a supported upload format.
type Format string

// Supported formats, named after their file extension.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// IsValid reports whether the format can be ingested.
func (f Format) IsValid() bool {
	return f == FormatPDF || f == FormatDOCX || f == FormatTXT
}

// FormatOf derives the format from a filename extension (case-insensitive).
func FormatOf(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	f := Format(ext)
	if !f.IsValid() {
		return "", fmt.Errorf("extension %q: %w", ext, domain.ErrUnsupportedFormat)
	}
	return f, nil
}

// Resume is an uploaded resume with its extracted text (immutable value object).
type Resume struct {
	id        string
	ownerID   string
	filename  string
	format    Format
	content   string
	createdAt int64
}

// New validates and creates a Resume with a fresh ID.
// Content is the already-extracted text; blank content means nothing could be extracted.
func New(ownerID, filename, content string, now time.Time) (Resume, error) {
	if ownerID == "" {
		return Resume{}, domain.NewFieldRequired("owner_id")
	}
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == "/" {
		return Resume{}, domain.NewFieldRequired("file")
	}
	if len(filename) > MaxFilenameLength {
		return Resume{}, domain.NewInvalidField("file", fmt.Sprintf("filename too long (max %d)", MaxFilenameLength))
	}
	format, err := FormatOf(filename)
	if err != nil {
		return Resume{}, err
	}
	if strings.TrimSpace(content) == "" {
		return Resume{}, fmt.Errorf("no extractable text in %q: %w", filename, domain.ErrUnsupportedFormat)
	}

	return Resume{
		id:        ksuid.New().String(),
		ownerID:   ownerID,
		filename:  filename,
		format:    format,
		content:   content,
		createdAt: now.UnixMilli(),
	}, nil
}

// Reconstruct creates a Resume without validation (storage hydration).
func Reconstruct(id, ownerID, filename string, format Format, content string, createdAt int64) Resume {
	return Resume{
		id: id, ownerID: ownerID, filename: filename,
		format: format, content: content, createdAt: createdAt,
	}
}

// ID returns the resume identifier.
func (r *Resume) ID() string { return r.id }

// OwnerID returns the uploading user's ID.
func (r *Resume) OwnerID() string { return r.ownerID }

// Filename returns the original upload filename.
func (r *Resume) Filename() string { return r.filename }

// Format returns the upload format.
func (r *Resume) Format() Format { return r.format }

// Content returns the extracted text.
func (r *Resume) Content() string { return r.content }

// CreatedAt returns the upload time in unix millis.
func (r *Resume) CreatedAt() int64 { return r.createdAt }

// WithContent returns a copy carrying different text (used for read-time redaction).
func (r *Resume) WithContent(content string) Resume {
	c := *r
	c.content = content
	return c
}
