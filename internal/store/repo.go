package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelar/inkpad/internal/apperr"
	"github.com/avelar/inkpad/internal/models"
)

// Save upserts a document by id. The stored UpdatedAt is always rewritten
// to the save time, independent of what the caller set. Returns the
// document as persisted.
func (db *DB) Save(doc models.Document) (models.Document, error) {
	if doc.ID == "" {
		return doc, fmt.Errorf("store: save: empty document id")
	}
	doc.UpdatedAt = time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = doc.UpdatedAt
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return doc, fmt.Errorf("store: marshal document: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO documents (id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data       = excluded.data,
			updated_at = excluded.updated_at
	`, doc.ID, string(data), doc.UpdatedAt)
	if err != nil {
		return doc, fmt.Errorf("store: save %s: %w", doc.ID, err)
	}
	return doc, nil
}

// Get returns the document with the given id, or apperr.ErrNotFound.
func (db *DB) Get(id string) (models.Document, error) {
	var data string
	err := db.conn.QueryRow(`SELECT data FROM documents WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("store: get %s: %w", id, err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return models.Document{}, fmt.Errorf("store: decode %s: %w", id, err)
	}
	return doc, nil
}

// List returns every document, most recently updated first. Rows whose JSON
// no longer decodes are logged and skipped rather than failing the listing.
func (db *DB) List() ([]models.Document, error) {
	rows, err := db.conn.Query(`SELECT id, data FROM documents ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var doc models.Document
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			db.logger.Warn("store: skipping corrupt document row",
				slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes one document record. It does not cascade to children —
// hierarchical deletion is the service layer's concern.
func (db *DB) Delete(id string) error {
	res, err := db.conn.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetSettings returns the stored workspace settings, or the defaults when
// none have been saved yet. A corrupt record falls back to defaults.
func (db *DB) GetSettings() (models.Settings, error) {
	var data string
	err := db.conn.QueryRow(`SELECT data FROM settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.DefaultSettings(), fmt.Errorf("store: get settings: %w", err)
	}

	s := models.DefaultSettings()
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		db.logger.Warn("store: corrupt settings record, using defaults",
			slog.String("error", err.Error()))
		return models.DefaultSettings(), nil
	}
	return s, nil
}

// SaveSettings stores the singular settings record.
func (db *DB) SaveSettings(s models.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: marshal settings: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO settings (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, string(data))
	if err != nil {
		return fmt.Errorf("store: save settings: %w", err)
	}
	return nil
}

// GetState returns the workspace state record (favorites, recents).
func (db *DB) GetState() (models.WorkspaceState, error) {
	var data string
	err := db.conn.QueryRow(`SELECT data FROM workspace_state WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WorkspaceState{}, nil
	}
	if err != nil {
		return models.WorkspaceState{}, fmt.Errorf("store: get state: %w", err)
	}

	var s models.WorkspaceState
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		db.logger.Warn("store: corrupt state record, resetting",
			slog.String("error", err.Error()))
		return models.WorkspaceState{}, nil
	}
	return s, nil
}

// SaveState stores the workspace state record.
func (db *DB) SaveState(s models.WorkspaceState) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: marshal state: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO workspace_state (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, string(data))
	if err != nil {
		return fmt.Errorf("store: save state: %w", err)
	}
	return nil
}
