package docservice

import (
	"context"

	"github.com/avelar/inkpad/internal/editor"
	"github.com/avelar/inkpad/internal/models"
	"github.com/avelar/inkpad/internal/search"
)

// InsertBlock inserts a new block into a document. When index is non-nil
// the block goes to that position (clamped); otherwise it is inserted after
// afterBlockID, or appended when that id is empty or unknown.
func (s *Service) InsertBlock(_ context.Context, docID, afterBlockID string, index *int, typ models.BlockType, content string) (*DocumentDetail, models.Block, error) {
	doc, err := s.store.Get(docID)
	if err != nil {
		return nil, models.Block{}, err
	}

	var updated models.Document
	var block models.Block
	if index != nil {
		updated, block = editor.InsertBlockAt(doc, *index, typ, content)
	} else {
		updated, block = editor.InsertBlockAfter(doc, afterBlockID, typ, content)
	}

	saved, err := s.store.Save(updated)
	if err != nil {
		return nil, models.Block{}, err
	}
	return detail(saved), block, nil
}

// UpdateBlock merges a patch into one block. An unknown block id leaves the
// document untouched (no save, no updatedAt bump) and is not an error.
func (s *Service) UpdateBlock(_ context.Context, docID, blockID string, patch editor.BlockPatch) (*DocumentDetail, error) {
	doc, err := s.store.Get(docID)
	if err != nil {
		return nil, err
	}
	if doc.FindBlock(blockID) < 0 {
		return detail(doc), nil
	}

	saved, err := s.store.Save(editor.UpdateBlock(doc, blockID, patch))
	if err != nil {
		return nil, err
	}
	return detail(saved), nil
}

// TypeBlockContent is the editor typing path: the new content runs through
// markdown shortcut detection, so writing "# Hi" into a paragraph turns it
// into a heading. Unknown block ids are a silent no-op.
func (s *Service) TypeBlockContent(_ context.Context, docID, blockID, content string) (*DocumentDetail, error) {
	doc, err := s.store.Get(docID)
	if err != nil {
		return nil, err
	}
	i := doc.FindBlock(blockID)
	if i < 0 {
		return detail(doc), nil
	}

	converted := editor.AutoConvert(doc.Blocks[i], content)
	patch := editor.BlockPatch{Type: &converted.Type, Content: &converted.Content}
	saved, err := s.store.Save(editor.UpdateBlock(doc, blockID, patch))
	if err != nil {
		return nil, err
	}
	return detail(saved), nil
}

// DeleteBlock removes one block. Deleting the sole remaining block or an
// unknown id leaves the document untouched.
func (s *Service) DeleteBlock(_ context.Context, docID, blockID string) (*DocumentDetail, error) {
	doc, err := s.store.Get(docID)
	if err != nil {
		return nil, err
	}
	if len(doc.Blocks) <= 1 || doc.FindBlock(blockID) < 0 {
		return detail(doc), nil
	}

	saved, err := s.store.Save(editor.DeleteBlock(doc, blockID))
	if err != nil {
		return nil, err
	}
	return detail(saved), nil
}

// MoveBlock reorders blocks by index. An out-of-range fromIndex leaves the
// document untouched.
func (s *Service) MoveBlock(_ context.Context, docID string, fromIndex, toIndex int) (*DocumentDetail, error) {
	doc, err := s.store.Get(docID)
	if err != nil {
		return nil, err
	}
	if fromIndex < 0 || fromIndex >= len(doc.Blocks) {
		return detail(doc), nil
	}

	saved, err := s.store.Save(editor.MoveBlock(doc, fromIndex, toIndex))
	if err != nil {
		return nil, err
	}
	return detail(saved), nil
}

// DuplicateBlock inserts a fresh-id copy right after the original. Unknown
// ids leave the document untouched.
func (s *Service) DuplicateBlock(_ context.Context, docID, blockID string) (*DocumentDetail, models.Block, error) {
	doc, err := s.store.Get(docID)
	if err != nil {
		return nil, models.Block{}, err
	}
	if doc.FindBlock(blockID) < 0 {
		return detail(doc), models.Block{}, nil
	}

	updated, dup := editor.DuplicateBlock(doc, blockID)
	saved, err := s.store.Save(updated)
	if err != nil {
		return nil, models.Block{}, err
	}
	return detail(saved), dup, nil
}

// Search runs a substring search over all documents.
func (s *Service) Search(_ context.Context, query string) ([]search.Result, error) {
	docs, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return search.Documents(docs, query), nil
}
