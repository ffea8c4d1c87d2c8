package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelar/inkpad/internal/apperr"
	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/export"
)

func exportFormat(r *http.Request) export.Format {
	f := r.URL.Query().Get("format")
	if f == "" {
		return export.FormatJSON
	}
	return export.Format(f)
}

func exportOptions(r *http.Request) export.Options {
	q := r.URL.Query()
	return export.Options{
		IncludeMetadata: q.Get("metadata") != "false",
		Pretty:          q.Get("pretty") != "false",
	}
}

func writeDownload(w http.ResponseWriter, res *docservice.ExportResult) {
	w.Header().Set("Content-Type", res.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Content))
}

// Search handles GET /api/search.
//
//	@Summary		Substring search across document titles and block content
//	@Tags			search
//	@Produce		json
//	@Param			q	query		string	true	"Search query"
//	@Success		200	{object}	SearchResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	results, err := h.svc.Search(r.Context(), q)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// ExportDocument handles GET /api/documents/{id}/export.
//
//	@Summary		Download one document in json, markdown, html, or txt
//	@Tags			export
//	@Produce		json
//	@Param			id			path		string	true	"Document id"
//	@Param			format		query		string	false	"Export format"	Enums(json, markdown, html, txt)
//	@Param			metadata	query		bool	false	"Include metadata (default true)"
//	@Param			pretty		query		bool	false	"Pretty-print JSON (default true)"
//	@Success		200			{string}	string	"Rendered document"
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/export [get]
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.svc.ExportDocument(r.Context(), id, exportFormat(r), exportOptions(r))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, export.ErrUnsupportedFormat):
			writeJSON(w, http.StatusBadRequest, errorBody("unsupported format"))
		default:
			slog.Error("export failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeDownload(w, res)
}

// BackupWorkspace handles GET /api/workspace/backup: the restorable JSON
// snapshot (documents plus settings).
//
//	@Summary		Download a restorable workspace snapshot
//	@Tags			workspace
//	@Produce		json
//	@Success		200	{string}	string	"Workspace snapshot"
//	@Security		BearerAuth
//	@Router			/workspace/backup [get]
func (h *Handler) BackupWorkspace(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ExportWorkspaceSnapshot(r.Context())
	if err != nil {
		slog.Error("workspace backup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeDownload(w, res)
}

// ExportWorkspace handles GET /api/workspace/export: a readable bundle of
// every document in the requested format.
//
//	@Summary		Download all documents as one bundle
//	@Tags			workspace
//	@Produce		json
//	@Param			format	query		string	false	"Export format"	Enums(json, markdown, html, txt)
//	@Success		200		{string}	string	"Workspace bundle"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/workspace/export [get]
func (h *Handler) ExportWorkspace(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ExportWorkspaceBundle(r.Context(), exportFormat(r), exportOptions(r))
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			writeJSON(w, http.StatusBadRequest, errorBody("unsupported format"))
		} else {
			slog.Error("workspace export failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeDownload(w, res)
}

// ImportWorkspace handles POST /api/workspace/import. The body is a
// snapshot produced by BackupWorkspace; documents merge by id.
//
//	@Summary		Restore a workspace snapshot
//	@Tags			workspace
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	ImportResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/workspace/import [post]
func (h *Handler) ImportWorkspace(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	n, err := h.svc.ImportWorkspace(r.Context(), blob)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidImport) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid workspace snapshot"))
		} else {
			slog.Error("workspace import failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("created", "")
	writeJSON(w, http.StatusOK, ImportResponse{Imported: n})
}

// GetWorkspaceState handles GET /api/workspace/state.
//
//	@Summary		Get the favorites and recents lists
//	@Tags			workspace
//	@Produce		json
//	@Success		200	{object}	models.WorkspaceState
//	@Security		BearerAuth
//	@Router			/workspace/state [get]
func (h *Handler) GetWorkspaceState(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.State(r.Context())
	if err != nil {
		slog.Error("get workspace state failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GetSettings handles GET /api/settings.
//
//	@Summary		Get workspace settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	models.Settings
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings(r.Context())
	if err != nil {
		slog.Error("get settings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PATCH /api/settings.
//
//	@Summary		Patch workspace settings
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UpdateSettingsRequest	true	"Fields to change"
//	@Success		200		{object}	models.Settings
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings [patch]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	settings, err := h.svc.UpdateSettings(r.Context(), docservice.SettingsPatch{
		Theme:            req.Theme,
		SidebarCollapsed: req.SidebarCollapsed,
		DefaultTemplate:  req.DefaultTemplate,
		AutoSave:         req.AutoSave,
	})
	if err != nil {
		slog.Error("update settings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ListTemplates handles GET /api/templates.
//
//	@Summary		List available document templates
//	@Tags			templates
//	@Produce		json
//	@Success		200	{array}	templates.Template
//	@Security		BearerAuth
//	@Router			/templates [get]
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": h.svc.Templates(r.Context()),
	})
}
