package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/sse"
	"github.com/avelar/inkpad/internal/storage"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, receives document events and serves GET /events.
// files backs the attachments endpoints.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, broker *sse.Broker, files storage.Provider) chi.Router {
	h := NewHandler(svc, broker)
	ah := NewAttachmentHandler(files)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Documents CRUD.
	r.Get("/documents", h.ListDocuments)
	r.Post("/documents", h.CreateDocument)
	r.Get("/documents/{id}", h.GetDocument)
	r.Patch("/documents/{id}", h.UpdateDocument)
	r.Delete("/documents/{id}", h.DeleteDocument)
	r.Post("/documents/{id}/open", h.OpenDocument)
	r.Post("/documents/{id}/favorite", h.ToggleFavorite)
	r.Get("/documents/{id}/export", h.ExportDocument)

	// Block operations.
	r.Post("/documents/{id}/blocks", h.InsertBlock)
	r.Post("/documents/{id}/blocks/move", h.MoveBlock)
	r.Patch("/documents/{id}/blocks/{blockID}", h.UpdateBlock)
	r.Delete("/documents/{id}/blocks/{blockID}", h.DeleteBlock)
	r.Post("/documents/{id}/blocks/{blockID}/duplicate", h.DuplicateBlock)

	// Search.
	r.Get("/search", h.Search)

	// Workspace snapshot, bundle export, and state.
	r.Get("/workspace/backup", h.BackupWorkspace)
	r.Get("/workspace/export", h.ExportWorkspace)
	r.Post("/workspace/import", h.ImportWorkspace)
	r.Get("/workspace/state", h.GetWorkspaceState)

	// Settings and templates.
	r.Get("/settings", h.GetSettings)
	r.Patch("/settings", h.UpdateSettings)
	r.Get("/templates", h.ListTemplates)

	// Attachments (auth-protected).
	r.Get("/attachments", ah.List)
	r.Post("/attachments", ah.Upload)
	r.Delete("/attachments/{filename}", ah.Delete)

	// SSE endpoint (protected by same auth middleware).
	if broker != nil {
		r.Get("/events", func(w http.ResponseWriter, req *http.Request) {
			broker.ServeHTTP(w, req)
		})
	}

	return r
}
