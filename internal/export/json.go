package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avelar/inkpad/internal/models"
)

// envelopeMeta annotates a JSON export. ExportedAt is the document's own
// UpdatedAt so that repeated exports stay byte-identical.
type envelopeMeta struct {
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
	Format     Format    `json:"format"`
}

type documentEnvelope struct {
	Metadata *envelopeMeta   `json:"metadata,omitempty"`
	Document models.Document `json:"document"`
}

func asJSON(doc models.Document, opts Options) (string, error) {
	env := documentEnvelope{Document: doc}
	if opts.IncludeMetadata {
		env.Metadata = &envelopeMeta{
			ExportedAt: doc.UpdatedAt,
			Version:    "1.0.0",
			Format:     FormatJSON,
		}
	}

	var (
		out []byte
		err error
	)
	if opts.Pretty {
		out, err = json.MarshalIndent(env, "", "  ")
	} else {
		out, err = json.Marshal(env)
	}
	if err != nil {
		return "", fmt.Errorf("export: marshal document: %w", err)
	}
	return string(out), nil
}
