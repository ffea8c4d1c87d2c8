package api

import (
	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/search"
)

// CreateDocumentRequest is the request body for creating a document.
type CreateDocumentRequest struct {
	Title      string `json:"title" example:"Project Roadmap"`
	ParentID   string `json:"parentId,omitempty" example:"9f1c..."`
	TemplateID string `json:"templateId,omitempty" example:"meeting"`
}

// UpdateDocumentRequest is the request body for a metadata patch. Absent
// fields are left unchanged.
type UpdateDocumentRequest struct {
	Title            *string   `json:"title,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
	ParentID         *string   `json:"parentId,omitempty"`
	Favorite         *bool     `json:"favorite,omitempty"`
	Archived         *bool     `json:"archived,omitempty"`
	Emoji            *string   `json:"emoji,omitempty"`
	CoverImage       *string   `json:"coverImage,omitempty"`
	IsTemplate       *bool     `json:"isTemplate,omitempty"`
	TemplateCategory *string   `json:"templateCategory,omitempty"`
}

// InsertBlockRequest is the request body for inserting a block. When Index
// is set it wins over AfterBlockID.
type InsertBlockRequest struct {
	Type         string `json:"type" example:"paragraph" validate:"required"`
	Content      string `json:"content" example:"Hello"`
	AfterBlockID string `json:"afterBlockId,omitempty"`
	Index        *int   `json:"index,omitempty"`
}

// UpdateBlockRequest is the request body for a block patch. With
// AutoConvert set the content runs through markdown shortcut detection
// (typing "# " turns a paragraph into a heading).
type UpdateBlockRequest struct {
	Type        *string `json:"type,omitempty"`
	Content     *string `json:"content,omitempty"`
	Checked     *bool   `json:"checked,omitempty"`
	Language    *string `json:"language,omitempty"`
	Caption     *string `json:"caption,omitempty"`
	AutoConvert bool    `json:"autoConvert,omitempty"`
}

// MoveBlockRequest is the request body for reordering blocks.
type MoveBlockRequest struct {
	FromIndex int `json:"fromIndex" validate:"required"`
	ToIndex   int `json:"toIndex" validate:"required"`
}

// UpdateSettingsRequest is the request body for a settings patch.
type UpdateSettingsRequest struct {
	Theme            *string `json:"theme,omitempty" example:"dark"`
	SidebarCollapsed *bool   `json:"sidebarCollapsed,omitempty"`
	DefaultTemplate  *string `json:"defaultTemplate,omitempty"`
	AutoSave         *bool   `json:"autoSave,omitempty"`
}

// DocumentDetail is the full document response type (aliased from the
// domain layer).
type DocumentDetail = docservice.DocumentDetail

// DocumentListItem is a lightweight item in a list response (aliased from
// the domain layer).
type DocumentListItem = docservice.DocumentListItem

// DocumentListResponse wraps document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents" validate:"required"`
	Total     int                `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []search.Result `json:"results" validate:"required"`
}

// ImportResponse reports a workspace restore.
type ImportResponse struct {
	Imported int `json:"imported" example:"12" validate:"required"`
}

// AttachmentUploadResponse is returned after a successful attachment upload.
type AttachmentUploadResponse struct {
	Filename string `json:"filename" example:"image.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/attachments/image.png" validate:"required"`
}
