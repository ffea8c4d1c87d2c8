// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Inkpad tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/export"
	"github.com/avelar/inkpad/internal/storage"
)

// Server wraps the MCP server with Inkpad tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *docservice.Service
	files storage.Provider
}

// New creates a new MCP server with all Inkpad tools registered.
func New(svc *docservice.Service, files storage.Provider) *Server {
	s := &Server{svc: svc, files: files}

	s.mcp = server.NewMCPServer(
		"Inkpad",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Search document titles and block content for a substring."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read a document rendered as Markdown."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("create_document",
		mcp.WithDescription("Create a new document from a JSON array of blocks. "+
			"Blocks MUST follow the canonical block format (typed JSON objects). "+
			"Read the contract first via the get_document_contract tool or the "+
			"inkpad://document-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Document title")),
		mcp.WithString("blocks", mcp.Description("Optional JSON array of blocks following the contract")),
	), s.createDocument)

	s.mcp.AddTool(mcp.NewTool("get_document_contract",
		mcp.WithDescription("Returns the canonical Inkpad block format contract. "+
			"Call this before creating documents to ensure correct structure."),
	), s.getDocumentContract)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List all documents with ids, titles, and timestamps."),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("export_document",
		mcp.WithDescription("Export a document in a given format: json, markdown, html, or txt."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
		mcp.WithString("format", mcp.Description("Export format (default markdown)")),
	), s.exportDocument)

	s.mcp.AddTool(mcp.NewTool("upload_asset",
		mcp.WithDescription("Download an image (or data: URI) and store it as an attachment. "+
			"Returns a URL usable as image block content."),
		mcp.WithString("url", mcp.Required(), mcp.Description("HTTP(S) URL or base64 data: URI")),
		mcp.WithString("filename", mcp.Description("Optional filename override")),
	), s.uploadAsset)

	// Resource: block format contract.
	s.mcp.AddResource(
		mcp.NewResource("inkpad://document-format", "Document Format Contract",
			mcp.WithResourceDescription("Canonical block JSON format that all documents follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocumentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.ExportDocument(ctx, id, export.FormatMarkdown, export.Options{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(res.Content), nil
}

func (s *Server) createDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.svc.CreateDocument(ctx, title, "", "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if raw, bErr := req.RequireString("blocks"); bErr == nil && raw != "" {
		var blocks []blockSpec
		if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid blocks JSON: %v", err)), nil
		}
		if err := s.appendBlocks(ctx, doc.ID, doc.Blocks[0].ID, blocks); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("created: %s", doc.ID)), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.ListDocuments(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) exportDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := export.FormatMarkdown
	if f, fErr := req.RequireString("format"); fErr == nil && f != "" {
		format = export.Format(f)
	}
	res, err := s.svc.ExportDocument(ctx, id, format, export.Options{IncludeMetadata: true, Pretty: true})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(res.Content), nil
}

func (s *Server) getDocumentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocumentFormatContract), nil
}

func (s *Server) readDocumentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "inkpad://document-format",
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}
