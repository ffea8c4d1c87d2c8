package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avelar/inkpad/internal/apperr"
	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/editor"
	"github.com/avelar/inkpad/internal/models"
	"github.com/avelar/inkpad/internal/sse"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc    *docservice.Service
	broker *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil, in which case no
// events are published.
func NewHandler(svc *docservice.Service, broker *sse.Broker) *Handler {
	return &Handler{svc: svc, broker: broker}
}

func (h *Handler) notify(kind, docID string) {
	if h.broker != nil {
		h.broker.PublishDocumentEvent(kind, docID)
	}
}

// decodeBody reads a JSON request body into v, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListDocuments handles GET /api/documents.
//
//	@Summary		List all documents, most recently updated first
//	@Tags			documents
//	@Produce		json
//	@Success		200	{object}	DocumentListResponse
//	@Security		BearerAuth
//	@Router			/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListDocuments(r.Context())
	if err != nil {
		slog.Error("list documents failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": items,
		"total":     len(items),
	})
}

// CreateDocument handles POST /api/documents.
//
//	@Summary		Create a document, optionally from a template
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateDocumentRequest	true	"Document to create"
//	@Success		201		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents [post]
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	doc, err := h.svc.CreateDocument(r.Context(), req.Title, req.ParentID, req.TemplateID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("unknown template"))
		} else {
			slog.Error("create document failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("created", doc.ID)
	writeJSON(w, http.StatusCreated, doc)
}

// GetDocument handles GET /api/documents/{id}.
//
//	@Summary		Get a single document
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document id"
//	@Success		200	{object}	DocumentDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.svc.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get document failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// OpenDocument handles POST /api/documents/{id}/open. Same payload as
// GetDocument, but records the document in the recently-opened list.
//
//	@Summary		Open a document (records it in recents)
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document id"
//	@Success		200	{object}	DocumentDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/open [post]
func (h *Handler) OpenDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.svc.OpenDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("open document failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateDocument handles PATCH /api/documents/{id} with optimistic
// concurrency via If-Match.
//
//	@Summary		Patch document metadata
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string					true	"Document id"
//	@Param			If-Match	header		string					false	"Checksum for optimistic concurrency"
//	@Param			body		body		UpdateDocumentRequest	true	"Fields to change"
//	@Success		200			{object}	DocumentDetail
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id} [patch]
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateDocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := editor.MetaPatch{
		Title:            req.Title,
		Tags:             req.Tags,
		ParentID:         req.ParentID,
		Favorite:         req.Favorite,
		Archived:         req.Archived,
		Emoji:            req.Emoji,
		CoverImage:       req.CoverImage,
		IsTemplate:       req.IsTemplate,
		TemplateCategory: req.TemplateCategory,
	}

	// Strip surrounding quotes if present (standard ETag format).
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	doc, err := h.svc.UpdateDocumentMeta(r.Context(), id, patch, ifMatch)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrConflict):
			writeJSON(w, http.StatusConflict, errorBody("checksum mismatch"))
		default:
			slog.Error("update document failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", id)
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument handles DELETE /api/documents/{id}. Deletes the document
// and all of its descendants.
//
//	@Summary		Delete a document and its descendants
//	@Tags			documents
//	@Param			id	path	string	true	"Document id"
//	@Success		204	"Document deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id} [delete]
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteDocument(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete document failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /api/documents/{id}/favorite.
//
//	@Summary		Toggle the favorite flag
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document id"
//	@Success		200	{object}	DocumentDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/favorite [post]
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.svc.ToggleFavorite(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("toggle favorite failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", id)
	writeJSON(w, http.StatusOK, doc)
}

// InsertBlock handles POST /api/documents/{id}/blocks.
//
//	@Summary		Insert a block
//	@Tags			blocks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Document id"
//	@Param			body	body		InsertBlockRequest	true	"Block to insert"
//	@Success		200		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/blocks [post]
func (h *Handler) InsertBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req InsertBlockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	typ := models.BlockType(req.Type)
	if !typ.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown block type"))
		return
	}

	doc, _, err := h.svc.InsertBlock(r.Context(), id, req.AfterBlockID, req.Index, typ, req.Content)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("insert block failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", id)
	writeJSON(w, http.StatusOK, doc)
}

// UpdateBlock handles PATCH /api/documents/{id}/blocks/{blockID}.
//
//	@Summary		Patch one block
//	@Tags			blocks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Document id"
//	@Param			blockID	path		string				true	"Block id"
//	@Param			body	body		UpdateBlockRequest	true	"Fields to change"
//	@Success		200		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/blocks/{blockID} [patch]
func (h *Handler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockID")
	var req UpdateBlockRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var doc *docservice.DocumentDetail
	var err error
	if req.AutoConvert {
		if req.Content == nil {
			writeJSON(w, http.StatusBadRequest, errorBody("autoConvert requires content"))
			return
		}
		doc, err = h.svc.TypeBlockContent(r.Context(), id, blockID, *req.Content)
	} else {
		patch := editor.BlockPatch{
			Content:  req.Content,
			Checked:  req.Checked,
			Language: req.Language,
			Caption:  req.Caption,
		}
		if req.Type != nil {
			typ := models.BlockType(*req.Type)
			if !typ.Valid() {
				writeJSON(w, http.StatusBadRequest, errorBody("unknown block type"))
				return
			}
			patch.Type = &typ
		}
		doc, err = h.svc.UpdateBlock(r.Context(), id, blockID, patch)
	}
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("update block failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", id)
	writeJSON(w, http.StatusOK, doc)
}

// DeleteBlock handles DELETE /api/documents/{id}/blocks/{blockID}.
//
//	@Summary		Delete one block (the sole remaining block survives)
//	@Tags			blocks
//	@Produce		json
//	@Param			id		path		string	true	"Document id"
//	@Param			blockID	path		string	true	"Block id"
//	@Success		200		{object}	DocumentDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/blocks/{blockID} [delete]
func (h *Handler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockID")
	doc, err := h.svc.DeleteBlock(r.Context(), id, blockID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete block failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", id)
	writeJSON(w, http.StatusOK, doc)
}

// MoveBlock handles POST /api/documents/{id}/blocks/move.
//
//	@Summary		Reorder blocks by index
//	@Tags			blocks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Document id"
//	@Param			body	body		MoveBlockRequest	true	"Source and destination indices"
//	@Success		200		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/blocks/move [post]
func (h *Handler) MoveBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req MoveBlockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	doc, err := h.svc.MoveBlock(r.Context(), id, req.FromIndex, req.ToIndex)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("move block failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", id)
	writeJSON(w, http.StatusOK, doc)
}

// DuplicateBlock handles POST /api/documents/{id}/blocks/{blockID}/duplicate.
//
//	@Summary		Duplicate one block
//	@Tags			blocks
//	@Produce		json
//	@Param			id		path		string	true	"Document id"
//	@Param			blockID	path		string	true	"Block id"
//	@Success		200		{object}	DocumentDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id}/blocks/{blockID}/duplicate [post]
func (h *Handler) DuplicateBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockID")
	doc, _, err := h.svc.DuplicateBlock(r.Context(), id, blockID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("duplicate block failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", id)
	writeJSON(w, http.StatusOK, doc)
}
