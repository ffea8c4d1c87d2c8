package docservice

import (
	"context"
	"time"

	"github.com/avelar/inkpad/internal/export"
)

// ExportResult carries rendered content plus the download headers the HTTP
// layer needs.
type ExportResult struct {
	Content  string
	Filename string
	MIMEType string
}

// ExportDocument renders one document in the requested format.
func (s *Service) ExportDocument(_ context.Context, id string, format export.Format, opts export.Options) (*ExportResult, error) {
	doc, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	content, err := export.Document(doc, format, opts)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Content:  content,
		Filename: export.Filename(doc, format),
		MIMEType: format.MIMEType(),
	}, nil
}

// ExportWorkspaceSnapshot produces the restorable whole-workspace JSON
// envelope (documents plus settings).
func (s *Service) ExportWorkspaceSnapshot(_ context.Context) (*ExportResult, error) {
	blob, err := s.store.ExportWorkspace()
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Content:  string(blob),
		Filename: export.WorkspaceBackupFilename(time.Now()),
		MIMEType: "application/json",
	}, nil
}

// ExportWorkspaceBundle renders every document into one bundle in the
// requested format. Unlike the snapshot this is for reading, not restoring.
func (s *Service) ExportWorkspaceBundle(_ context.Context, format export.Format, opts export.Options) (*ExportResult, error) {
	docs, err := s.store.List()
	if err != nil {
		return nil, err
	}
	content, err := export.Workspace(docs, format, opts)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Content:  content,
		Filename: "workspace-export." + format.Extension(),
		MIMEType: format.MIMEType(),
	}, nil
}

// ImportWorkspace restores a snapshot, merging documents by id. Returns the
// number of documents imported.
func (s *Service) ImportWorkspace(_ context.Context, blob []byte) (int, error) {
	return s.store.ImportWorkspace(blob)
}
