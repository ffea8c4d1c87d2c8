package mcpserver

import (
	"context"
	"fmt"

	"github.com/avelar/inkpad/internal/editor"
	"github.com/avelar/inkpad/internal/models"
)

// blockSpec is the JSON shape MCP clients use to describe blocks, matching
// the published contract.
type blockSpec struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Checked  *bool  `json:"checked,omitempty"`
	Language string `json:"language,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// appendBlocks appends the given blocks to a freshly created document and
// removes the seed paragraph the document was created with.
func (s *Server) appendBlocks(ctx context.Context, docID, seedBlockID string, specs []blockSpec) error {
	for _, spec := range specs {
		typ := models.BlockType(spec.Type)
		if !typ.Valid() {
			return fmt.Errorf("unknown block type: %q", spec.Type)
		}
		_, blk, err := s.svc.InsertBlock(ctx, docID, "", nil, typ, spec.Content)
		if err != nil {
			return err
		}
		if spec.Checked != nil || spec.Language != "" || spec.Caption != "" {
			patch := editor.BlockPatch{Checked: spec.Checked}
			if spec.Language != "" {
				patch.Language = &spec.Language
			}
			if spec.Caption != "" {
				patch.Caption = &spec.Caption
			}
			if _, err := s.svc.UpdateBlock(ctx, docID, blk.ID, patch); err != nil {
				return err
			}
		}
	}
	if len(specs) > 0 {
		if _, err := s.svc.DeleteBlock(ctx, docID, seedBlockID); err != nil {
			return err
		}
	}
	return nil
}
