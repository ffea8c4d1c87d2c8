package api

import (
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/avelar/inkpad/internal/apperr"
	"github.com/avelar/inkpad/internal/storage"
)

const maxUploadBytes = 50 << 20 // 50 MB

// AttachmentHandler serves and accepts attachment files. Image blocks
// reference uploads by the returned URL.
type AttachmentHandler struct {
	files storage.Provider
}

// NewAttachmentHandler creates a handler over the given file store.
func NewAttachmentHandler(files storage.Provider) *AttachmentHandler {
	return &AttachmentHandler{files: files}
}

// ServeFile handles GET /attachments/{filename}.
func (h *AttachmentHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.files.Path(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// List handles GET /api/attachments.
//
//	@Summary		List uploaded attachments
//	@Tags			attachments
//	@Produce		json
//	@Success		200	{array}	storage.FileInfo
//	@Security		BearerAuth
//	@Router			/attachments [get]
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.files.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list attachments"))
		return
	}
	if files == nil {
		files = []storage.FileInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"attachments": files,
	})
}

// Upload handles POST /api/attachments (multipart/form-data, field "file").
//
//	@Summary		Upload an attachment
//	@Tags			attachments
//	@Accept			mpfd
//	@Produce		json
//	@Success		201	{object}	AttachmentUploadResponse
//	@Failure		400	{object}	errResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/attachments [post]
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to read upload"))
		return
	}

	// Uploads never overwrite: an existing attachment may be referenced by
	// image blocks.
	if _, readErr := h.files.Read(header.Filename); readErr == nil {
		writeJSON(w, http.StatusConflict, errorBody(apperr.ErrAlreadyExists.Error()))
		return
	}

	if err := h.files.Write(header.Filename, content); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, AttachmentUploadResponse{
		Filename: header.Filename,
		Size:     int64(len(content)),
		URL:      "/attachments/" + header.Filename,
	})
}

// Delete handles DELETE /api/attachments/{filename}.
//
//	@Summary		Delete an attachment
//	@Tags			attachments
//	@Param			filename	path	string	true	"Attachment filename"
//	@Success		204			"Attachment deleted"
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/attachments/{filename} [delete]
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := h.files.Delete(filename); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
