package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avelar/inkpad/internal/models"
)

type workspaceMeta struct {
	ExportedAt    time.Time `json:"exportedAt"`
	Version       string    `json:"version"`
	Format        Format    `json:"format"`
	DocumentCount int       `json:"documentCount"`
}

type workspaceDocument struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Content string           `json:"content,omitempty"`
	Raw     *models.Document `json:"document,omitempty"`
}

type workspaceBundle struct {
	Metadata  workspaceMeta       `json:"metadata"`
	Documents []workspaceDocument `json:"documents"`
}

// Workspace renders a whole collection into one JSON bundle. For the json
// format each entry embeds the document value itself; for text formats each
// entry carries the rendered string (without per-document metadata, which
// lives in the envelope).
func Workspace(docs []models.Document, format Format, opts Options) (string, error) {
	bundle := workspaceBundle{
		Metadata: workspaceMeta{
			ExportedAt:    time.Now().UTC(),
			Version:       "1.0.0",
			Format:        format,
			DocumentCount: len(docs),
		},
		Documents: make([]workspaceDocument, 0, len(docs)),
	}

	for i := range docs {
		entry := workspaceDocument{ID: docs[i].ID, Title: docs[i].Title}
		if format == FormatJSON {
			entry.Raw = &docs[i]
		} else {
			content, err := Document(docs[i], format, Options{Pretty: opts.Pretty})
			if err != nil {
				return "", err
			}
			entry.Content = content
		}
		bundle.Documents = append(bundle.Documents, entry)
	}

	var (
		out []byte
		err error
	)
	if opts.Pretty {
		out, err = json.MarshalIndent(bundle, "", "  ")
	} else {
		out, err = json.Marshal(bundle)
	}
	if err != nil {
		return "", fmt.Errorf("export: marshal workspace: %w", err)
	}
	return string(out), nil
}
