package editor

import (
	"time"

	"github.com/avelar/inkpad/internal/models"
)

// PlaceholderImageURL is the initial content of a freshly inserted image
// block, replaced once the user uploads or links a real image.
const PlaceholderImageURL = "https://placehold.co/600x300/e2e8f0/64748b?text=Click+to+add+image"

// newBlock creates a block with a fresh id and per-kind defaults.
func newBlock(typ models.BlockType, content string) models.Block {
	b := models.Block{
		ID:      NewID(),
		Type:    typ,
		Content: content,
	}
	if typ == models.BlockImage && content == "" {
		b.Content = PlaceholderImageURL
	}
	return b
}

// InsertBlockAfter inserts a new block immediately after the block with the
// given id. When afterBlockID is empty or unknown the block is appended.
// Returns the updated document and the inserted block.
func InsertBlockAfter(doc models.Document, afterBlockID string, typ models.BlockType, content string) (models.Document, models.Block) {
	idx := len(doc.Blocks)
	if i := doc.FindBlock(afterBlockID); i >= 0 {
		idx = i + 1
	}
	return InsertBlockAt(doc, idx, typ, content)
}

// InsertBlockAt inserts a new block at the given index (clamped to the
// valid range). Returns the updated document and the inserted block.
func InsertBlockAt(doc models.Document, index int, typ models.BlockType, content string) (models.Document, models.Block) {
	out := doc.Clone()
	nb := newBlock(typ, content)

	if index < 0 {
		index = 0
	}
	if index > len(out.Blocks) {
		index = len(out.Blocks)
	}
	out.Blocks = append(out.Blocks, models.Block{})
	copy(out.Blocks[index+1:], out.Blocks[index:])
	out.Blocks[index] = nb

	out.UpdatedAt = time.Now().UTC()
	return out, nb
}

// BlockPatch describes a partial update of one block. Nil fields are left
// unchanged.
type BlockPatch struct {
	Type     *models.BlockType
	Content  *string
	Checked  *bool
	Language *string
	Caption  *string
}

// UpdateBlock merges the patch into the block with the given id. Unknown
// ids are a silent no-op: the input document is returned unchanged.
func UpdateBlock(doc models.Document, blockID string, patch BlockPatch) models.Document {
	i := doc.FindBlock(blockID)
	if i < 0 {
		return doc
	}
	out := doc.Clone()
	b := &out.Blocks[i]
	if patch.Type != nil {
		b.Type = *patch.Type
	}
	if patch.Content != nil {
		b.Content = *patch.Content
	}
	if patch.Checked != nil {
		b.Checked = *patch.Checked
	}
	if patch.Language != nil {
		b.Language = *patch.Language
	}
	if patch.Caption != nil {
		b.Caption = *patch.Caption
	}
	out.UpdatedAt = time.Now().UTC()
	return out
}

// DeleteBlock removes the block with the given id. Deleting the sole
// remaining block is a no-op: a document never becomes empty. Unknown ids
// are also a no-op.
func DeleteBlock(doc models.Document, blockID string) models.Document {
	if len(doc.Blocks) <= 1 {
		return doc
	}
	i := doc.FindBlock(blockID)
	if i < 0 {
		return doc
	}
	out := doc.Clone()
	out.Blocks = append(out.Blocks[:i], out.Blocks[i+1:]...)
	out.UpdatedAt = time.Now().UTC()
	return out
}

// MoveBlock removes the block at fromIndex and reinserts it at toIndex.
// toIndex is interpreted against the slice after removal (splice-then-splice),
// which is what drag-and-drop expects: moving [A B C D] with (1,3) yields
// [A C D B]. Out-of-range fromIndex is a no-op; toIndex is clamped.
func MoveBlock(doc models.Document, fromIndex, toIndex int) models.Document {
	if fromIndex < 0 || fromIndex >= len(doc.Blocks) {
		return doc
	}
	out := doc.Clone()
	moved := out.Blocks[fromIndex]
	out.Blocks = append(out.Blocks[:fromIndex], out.Blocks[fromIndex+1:]...)

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(out.Blocks) {
		toIndex = len(out.Blocks)
	}
	out.Blocks = append(out.Blocks, models.Block{})
	copy(out.Blocks[toIndex+1:], out.Blocks[toIndex:])
	out.Blocks[toIndex] = moved

	out.UpdatedAt = time.Now().UTC()
	return out
}

// DuplicateBlock inserts a copy of the block (fresh id) immediately after
// the original. Unknown ids are a no-op.
func DuplicateBlock(doc models.Document, blockID string) (models.Document, models.Block) {
	i := doc.FindBlock(blockID)
	if i < 0 {
		return doc, models.Block{}
	}
	out := doc.Clone()
	dup := out.Blocks[i].Clone()
	dup.ID = NewID()

	out.Blocks = append(out.Blocks, models.Block{})
	copy(out.Blocks[i+2:], out.Blocks[i+1:])
	out.Blocks[i+1] = dup

	out.UpdatedAt = time.Now().UTC()
	return out, dup
}
