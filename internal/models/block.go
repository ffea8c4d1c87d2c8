// Package models defines the domain types for Inkpad.
package models

// BlockType identifies the kind of a content block.
type BlockType string

// Block kinds.
const (
	BlockParagraph    BlockType = "paragraph"
	BlockHeading1     BlockType = "heading1"
	BlockHeading2     BlockType = "heading2"
	BlockHeading3     BlockType = "heading3"
	BlockBulletList   BlockType = "bulletList"
	BlockNumberedList BlockType = "numberedList"
	BlockTodoList     BlockType = "todoList"
	BlockQuote        BlockType = "quote"
	BlockCode         BlockType = "code"
	BlockDivider      BlockType = "divider"
	BlockImage        BlockType = "image"
)

// blockTypes is the closed set of valid block kinds.
var blockTypes = map[BlockType]struct{}{
	BlockParagraph:    {},
	BlockHeading1:     {},
	BlockHeading2:     {},
	BlockHeading3:     {},
	BlockBulletList:   {},
	BlockNumberedList: {},
	BlockTodoList:     {},
	BlockQuote:        {},
	BlockCode:         {},
	BlockDivider:      {},
	BlockImage:        {},
}

// Valid reports whether t is one of the enumerated block kinds.
func (t BlockType) Valid() bool {
	_, ok := blockTypes[t]
	return ok
}

// Block is the atomic content unit of a document.
//
// ID is assigned at creation and stable for the block's lifetime; the type
// may still change in place when content is retyped (markdown shortcuts).
// Content is always a string — empty string is the "no content" state. For
// image blocks Content holds the image URL and Caption the optional caption.
// The kind-specific fields (Checked, Language, Caption) are meaningful only
// for their kind and zero-valued otherwise.
type Block struct {
	ID       string    `json:"id"`
	Type     BlockType `json:"type"`
	Content  string    `json:"content"`
	Checked  bool      `json:"checked,omitempty"`  // todoList
	Language string    `json:"language,omitempty"` // code
	Caption  string    `json:"caption,omitempty"`  // image
}

// Clone returns a copy of the block.
func (b Block) Clone() Block {
	return b
}
