// Package editor implements the pure document mutation layer. Every
// function takes a Document value and returns a new one; inputs are never
// modified, so callers can treat documents as immutable between calls.
// Persistence is the caller's concern.
package editor

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelar/inkpad/internal/models"
)

// NewID returns a fresh opaque identifier for documents and blocks.
func NewID() string {
	return uuid.NewString()
}

// NewDocument creates a document with the given title and optional parent.
// When templateBlocks is non-empty the new document starts from a copy of
// those blocks (with fresh ids, so block ids stay unique per document);
// otherwise it starts with a single empty paragraph.
func NewDocument(title, parentID string, templateBlocks []models.Block) models.Document {
	if title == "" {
		title = models.DefaultTitle
	}

	var blocks []models.Block
	if len(templateBlocks) > 0 {
		blocks = make([]models.Block, len(templateBlocks))
		for i, b := range templateBlocks {
			nb := b.Clone()
			nb.ID = NewID()
			blocks[i] = nb
		}
	} else {
		blocks = []models.Block{newBlock(models.BlockParagraph, "")}
	}

	now := time.Now().UTC()
	return models.Document{
		ID:        NewID(),
		Title:     title,
		Blocks:    blocks,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MetaPatch describes a partial update of document metadata. Nil fields are
// left unchanged.
type MetaPatch struct {
	Title            *string
	Tags             *[]string
	ParentID         *string
	Favorite         *bool
	Archived         *bool
	Emoji            *string
	CoverImage       *string
	IsTemplate       *bool
	TemplateCategory *string
}

// UpdateMeta merges the patch into the document and refreshes UpdatedAt.
func UpdateMeta(doc models.Document, patch MetaPatch) models.Document {
	out := doc.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
		if out.Title == "" {
			out.Title = models.DefaultTitle
		}
	}
	if patch.Tags != nil {
		out.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.ParentID != nil {
		out.ParentID = *patch.ParentID
	}
	if patch.Favorite != nil {
		out.Favorite = *patch.Favorite
	}
	if patch.Archived != nil {
		out.Archived = *patch.Archived
	}
	if patch.Emoji != nil {
		out.Emoji = *patch.Emoji
	}
	if patch.CoverImage != nil {
		out.CoverImage = *patch.CoverImage
	}
	if patch.IsTemplate != nil {
		out.IsTemplate = *patch.IsTemplate
	}
	if patch.TemplateCategory != nil {
		out.TemplateCategory = *patch.TemplateCategory
	}
	out.UpdatedAt = time.Now().UTC()
	return out
}
