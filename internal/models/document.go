package models

import "time"

// DefaultTitle is used when a document is created with an empty title.
const DefaultTitle = "Untitled Document"

// Document is an ordered sequence of blocks plus metadata.
//
// Blocks is never empty: a document always keeps at least one block, and
// the mutation layer refuses to delete the last one. Block order is the
// display and export order.
type Document struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Blocks           []Block   `json:"blocks"`
	Tags             []string  `json:"tags,omitempty"`
	ParentID         string    `json:"parentId,omitempty"`
	Favorite         bool      `json:"favorite,omitempty"`
	Archived         bool      `json:"archived,omitempty"`
	Emoji            string    `json:"emoji,omitempty"`
	CoverImage       string    `json:"coverImage,omitempty"`
	IsTemplate       bool      `json:"isTemplate,omitempty"`
	TemplateCategory string    `json:"templateCategory,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the document. Mutation functions operate on
// clones so callers can treat every Document value as immutable.
func (d Document) Clone() Document {
	out := d
	out.Blocks = make([]Block, len(d.Blocks))
	copy(out.Blocks, d.Blocks)
	if d.Tags != nil {
		out.Tags = make([]string, len(d.Tags))
		copy(out.Tags, d.Tags)
	}
	return out
}

// FindBlock returns the index of the block with the given id, or -1.
func (d Document) FindBlock(blockID string) int {
	for i := range d.Blocks {
		if d.Blocks[i].ID == blockID {
			return i
		}
	}
	return -1
}

// Settings is the singular workspace settings record.
type Settings struct {
	Theme            string `json:"theme"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
	DefaultTemplate  string `json:"defaultTemplate"`
	AutoSave         bool   `json:"autoSave"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "system",
		DefaultTemplate: "blank",
		AutoSave:        true,
	}
}

// maxRecents caps the recently-opened list.
const maxRecents = 10

// WorkspaceState holds the cross-document UI lists that survive restarts:
// favorite document ids and the most recently opened ones.
type WorkspaceState struct {
	Favorites []string `json:"favorites"`
	Recents   []string `json:"recents"`
}

// ToggleFavorite adds id to the favorites list, or removes it when present.
func (s *WorkspaceState) ToggleFavorite(id string) {
	for i, f := range s.Favorites {
		if f == id {
			s.Favorites = append(s.Favorites[:i], s.Favorites[i+1:]...)
			return
		}
	}
	s.Favorites = append(s.Favorites, id)
}

// TouchRecent moves id to the front of the recents list, capped at ten.
func (s *WorkspaceState) TouchRecent(id string) {
	out := make([]string, 0, len(s.Recents)+1)
	out = append(out, id)
	for _, r := range s.Recents {
		if r != id {
			out = append(out, r)
		}
	}
	if len(out) > maxRecents {
		out = out[:maxRecents]
	}
	s.Recents = out
}

// Remove drops the given ids from both lists. Used when documents are
// deleted (including cascade deletes of descendants).
func (s *WorkspaceState) Remove(ids map[string]struct{}) {
	s.Favorites = dropIDs(s.Favorites, ids)
	s.Recents = dropIDs(s.Recents, ids)
}

func dropIDs(list []string, ids map[string]struct{}) []string {
	out := list[:0]
	for _, v := range list {
		if _, gone := ids[v]; !gone {
			out = append(out, v)
		}
	}
	return out
}
