package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/kashmiricraft/treasures-api/internal/http/response"
	"github.com/kashmiricraft/treasures-api/internal/storage"
)

// UploadsHandler streams stored product images. Going through the image
// store rather than a filesystem handler keeps the route working for both
// the local and the object-storage backend.
type UploadsHandler struct {
	store storage.ImageStore
}

func NewUploadsHandler(store storage.ImageStore) *UploadsHandler {
	return &UploadsHandler{store: store}
}

func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	rc, err := h.store.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrImageNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "image not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load image", nil)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		slog.WarnContext(r.Context(), "image stream interrupted", "filename", filename, "error", err)
	}
}
