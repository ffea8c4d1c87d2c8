package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avelar/inkpad/internal/apperr"
	"github.com/avelar/inkpad/internal/models"
)

// ExportVersion tags workspace snapshots so future revisions can migrate them.
const ExportVersion = "1.0"

// WorkspaceEnvelope is the serialized form of a whole-workspace snapshot.
type WorkspaceEnvelope struct {
	ExportedAt    time.Time         `json:"exportedAt"`
	Version       string            `json:"version"`
	DocumentCount int               `json:"documentCount"`
	Documents     []models.Document `json:"documents"`
	Settings      *models.Settings  `json:"settings,omitempty"`
}

// ExportWorkspace serializes every document plus the settings record into
// one pretty-printed JSON snapshot.
func (db *DB) ExportWorkspace() ([]byte, error) {
	docs, err := db.List()
	if err != nil {
		return nil, err
	}
	settings, err := db.GetSettings()
	if err != nil {
		return nil, err
	}

	env := WorkspaceEnvelope{
		ExportedAt:    time.Now().UTC(),
		Version:       ExportVersion,
		DocumentCount: len(docs),
		Documents:     docs,
		Settings:      &settings,
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: marshal workspace: %w", err)
	}
	return out, nil
}

// ImportWorkspace restores a previously exported snapshot. Documents are
// merged by id — an imported document overwrites an existing one with the
// same id (Save semantics). Malformed input is rejected before anything is
// written, so existing state stays untouched. Returns the number of
// documents imported.
func (db *DB) ImportWorkspace(blob []byte) (int, error) {
	var env WorkspaceEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrInvalidImport, err)
	}
	if env.Documents == nil {
		return 0, fmt.Errorf("%w: no documents field", apperr.ErrInvalidImport)
	}
	for _, doc := range env.Documents {
		if doc.ID == "" {
			return 0, fmt.Errorf("%w: document without id", apperr.ErrInvalidImport)
		}
	}

	for _, doc := range env.Documents {
		if _, err := db.Save(doc); err != nil {
			return 0, err
		}
	}
	if env.Settings != nil {
		if err := db.SaveSettings(*env.Settings); err != nil {
			return 0, err
		}
	}
	return len(env.Documents), nil
}
