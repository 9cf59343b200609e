package httpd

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kimdaedan/exhibition-backend/internal/service"
)

const msgFileNotFound = "File tidak ditemukan."

func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, size, err := h.uploadService.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, msgFileNotFound)
			return
		}
		h.logError(r, err, "Failed to open upload")
		writeError(w, r, http.StatusInternalServerError, msgInternalError)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn().Err(err).Str("name", name).Msg("Upload transfer interrupted")
	}
}
