// Package docservice coordinates the pure mutation layer, the template
// registry, and the persistence façade. The HTTP and MCP surfaces both sit
// on top of this package.
package docservice

import (
	"context"
	"errors"
	"time"

	"github.com/avelar/inkpad/internal/apperr"
	"github.com/avelar/inkpad/internal/checksum"
	"github.com/avelar/inkpad/internal/editor"
	"github.com/avelar/inkpad/internal/models"
	"github.com/avelar/inkpad/internal/store"
	"github.com/avelar/inkpad/internal/templates"
)

// DocumentDetail is the full representation of a document plus the digest
// clients echo back in If-Match headers.
type DocumentDetail struct {
	models.Document
	Checksum string `json:"checksum"`
}

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Emoji      string    `json:"emoji,omitempty"`
	ParentID   string    `json:"parentId,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Favorite   bool      `json:"favorite"`
	Archived   bool      `json:"archived"`
	BlockCount int       `json:"blockCount"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Service coordinates document operations.
type Service struct {
	store     store.Store
	templates *templates.Registry
}

// NewService creates a new document service.
func NewService(st store.Store, reg *templates.Registry) *Service {
	return &Service{store: st, templates: reg}
}

func detail(doc models.Document) *DocumentDetail {
	return &DocumentDetail{Document: doc, Checksum: checksum.Document(doc)}
}

// CreateDocument creates and persists a new document. When templateID names
// a registered template its blocks seed the document; the empty id and the
// built-in blank template both produce a single empty paragraph.
func (s *Service) CreateDocument(_ context.Context, title, parentID, templateID string) (*DocumentDetail, error) {
	var tplBlocks []models.Block
	if templateID != "" && templateID != templates.BlankID {
		tpl, err := s.templates.Get(templateID)
		if err != nil {
			return nil, err
		}
		tplBlocks = tpl.Blocks
	}

	doc := editor.NewDocument(title, parentID, tplBlocks)
	saved, err := s.store.Save(doc)
	if err != nil {
		return nil, err
	}
	return detail(saved), nil
}

// GetDocument returns a document without side effects.
func (s *Service) GetDocument(_ context.Context, id string) (*DocumentDetail, error) {
	doc, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return detail(doc), nil
}

// OpenDocument returns a document and records it in the recently-opened
// list, mirroring what opening a page in the editor does.
func (s *Service) OpenDocument(ctx context.Context, id string) (*DocumentDetail, error) {
	d, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := s.store.GetState()
	if err != nil {
		return nil, err
	}
	state.TouchRecent(id)
	if err := s.store.SaveState(state); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDocumentMeta merges a metadata patch into the document. ifMatch,
// when non-empty, must equal the stored document's checksum or the update
// is rejected with apperr.ErrConflict.
func (s *Service) UpdateDocumentMeta(_ context.Context, id string, patch editor.MetaPatch, ifMatch string) (*DocumentDetail, error) {
	doc, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Document(doc) {
		return nil, apperr.ErrConflict
	}

	updated := editor.UpdateMeta(doc, patch)
	saved, err := s.store.Save(updated)
	if err != nil {
		return nil, err
	}
	return detail(saved), nil
}

// ListDocuments returns lightweight items for every document, most
// recently updated first (store order).
func (s *Service) ListDocuments(_ context.Context) ([]DocumentListItem, error) {
	docs, err := s.store.List()
	if err != nil {
		return nil, err
	}
	items := make([]DocumentListItem, len(docs))
	for i, d := range docs {
		items[i] = DocumentListItem{
			ID:         d.ID,
			Title:      d.Title,
			Emoji:      d.Emoji,
			ParentID:   d.ParentID,
			Tags:       d.Tags,
			Favorite:   d.Favorite,
			Archived:   d.Archived,
			BlockCount: len(d.Blocks),
			UpdatedAt:  d.UpdatedAt,
		}
	}
	return items, nil
}

// DeleteDocument removes a document and every descendant reachable through
// parentId references, then scrubs the deleted ids from the favorites and
// recents lists. The visited set guards against parentId cycles in data
// written by older revisions.
func (s *Service) DeleteDocument(_ context.Context, id string) error {
	if _, err := s.store.Get(id); err != nil {
		return err
	}

	docs, err := s.store.List()
	if err != nil {
		return err
	}

	children := make(map[string][]string, len(docs))
	for _, d := range docs {
		if d.ParentID != "" {
			children[d.ParentID] = append(children[d.ParentID], d.ID)
		}
	}

	doomed := map[string]struct{}{}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := doomed[cur]; seen {
			continue
		}
		doomed[cur] = struct{}{}
		queue = append(queue, children[cur]...)
	}

	for victim := range doomed {
		if err := s.store.Delete(victim); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
	}

	state, err := s.store.GetState()
	if err != nil {
		return err
	}
	state.Remove(doomed)
	return s.store.SaveState(state)
}

// ToggleFavorite flips the document's favorite flag and mirrors the change
// into the workspace favorites list.
func (s *Service) ToggleFavorite(_ context.Context, id string) (*DocumentDetail, error) {
	doc, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	fav := !doc.Favorite
	updated := editor.UpdateMeta(doc, editor.MetaPatch{Favorite: &fav})
	saved, err := s.store.Save(updated)
	if err != nil {
		return nil, err
	}

	state, err := s.store.GetState()
	if err != nil {
		return nil, err
	}
	state.ToggleFavorite(id)
	if err := s.store.SaveState(state); err != nil {
		return nil, err
	}
	return detail(saved), nil
}

// State returns the workspace favorites/recents record.
func (s *Service) State(_ context.Context) (models.WorkspaceState, error) {
	return s.store.GetState()
}

// Settings returns the workspace settings.
func (s *Service) Settings(_ context.Context) (models.Settings, error) {
	return s.store.GetSettings()
}

// SettingsPatch describes a partial settings update.
type SettingsPatch struct {
	Theme            *string
	SidebarCollapsed *bool
	DefaultTemplate  *string
	AutoSave         *bool
}

// UpdateSettings merges the patch into the stored settings.
func (s *Service) UpdateSettings(_ context.Context, patch SettingsPatch) (models.Settings, error) {
	current, err := s.store.GetSettings()
	if err != nil {
		return current, err
	}
	if patch.Theme != nil {
		current.Theme = *patch.Theme
	}
	if patch.SidebarCollapsed != nil {
		current.SidebarCollapsed = *patch.SidebarCollapsed
	}
	if patch.DefaultTemplate != nil {
		current.DefaultTemplate = *patch.DefaultTemplate
	}
	if patch.AutoSave != nil {
		current.AutoSave = *patch.AutoSave
	}
	if err := s.store.SaveSettings(current); err != nil {
		return current, err
	}
	return current, nil
}

// Templates returns the available document templates.
func (s *Service) Templates(_ context.Context) []templates.Template {
	return s.templates.List()
}
