// Package export renders documents into interchange formats. Rendering is
// stateless and deterministic: identical input and options produce
// byte-identical output. Timestamps embedded with IncludeMetadata are the
// document's own, never the wall clock.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avelar/inkpad/internal/models"
)

// Format selects the output serialization.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "txt"
)

// ErrUnsupportedFormat is returned for format values outside the enumerated
// set. Unlike the mutation layer's silent no-ops, this failure is surfaced
// to the caller.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Options control rendering.
type Options struct {
	IncludeMetadata bool
	Pretty          bool
}

// Document renders one document in the requested format.
func Document(doc models.Document, format Format, opts Options) (string, error) {
	switch format {
	case FormatJSON:
		return asJSON(doc, opts)
	case FormatMarkdown:
		return asMarkdown(doc, opts), nil
	case FormatHTML:
		return asHTML(doc, opts), nil
	case FormatText:
		return asText(doc, opts), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Extension returns the file extension for a format, without the dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// MIMEType returns the content type for a format.
func (f Format) MIMEType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Filename derives a download filename from the document title:
// lowercase, with every character outside [a-z0-9] replaced by an
// underscore.
func Filename(doc models.Document, format Format) string {
	return slugify(doc.Title) + "." + format.Extension()
}

// WorkspaceBackupFilename names whole-workspace snapshots by date.
func WorkspaceBackupFilename(now time.Time) string {
	return "workspace-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
