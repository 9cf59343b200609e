package httpd

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/service"
)

const (
	msgKaryaCreated       = "Data berhasil disimpan!"
	msgKaryaStatusUpdated = "Status karya berhasil diperbarui."
	msgKaryaDeleted       = "Karya berhasil dihapus."
	msgKaryaNotFound      = "Karya tidak ditemukan."
	msgKaryaInvalid       = "Data karya tidak lengkap."
	msgTitleRequired      = "Judul karya wajib diisi."
	msgProdiRequired      = "Program studi wajib dipilih."
	msgFileRequired       = "File karya wajib diunggah."
	msgYoutubeRequired    = "Link YouTube wajib diisi."
	msgUploadTypeInvalid  = "Jenis unggahan tidak valid. Gunakan file atau youtube."
	msgKaryaStatusInvalid = "Status tidak valid. Gunakan Approved atau Rejected."
	msgKaryaCreateFailed  = "Gagal menyimpan karya ke database."
	msgKaryaListFailed    = "Gagal mengambil data karya."
	msgKaryaUpdateFailed  = "Gagal memperbarui status karya."
	msgKaryaDeleteFailed  = "Gagal menghapus karya."
)

// createKaryaJSON is the JSON form of a submission. It cannot carry a file.
type createKaryaJSON struct {
	Title         string `json:"title"`
	SelectedProdi string `json:"selectedProdi"`
	Prodi         string `json:"prodi"`
	Nama          string `json:"nama"`
	NIM           string `json:"nim"`
	Description   string `json:"description"`
	UploadType    string `json:"uploadType"`
	YoutubeLink   string `json:"youtubeLink"`
}

func (h *Handler) CreateKarya(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		h.createKaryaFromJSON(w, r)
		return
	}

	if err := r.ParseMultipartForm(h.config.MaxFormMemory); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	req := &models.CreateKaryaRequest{
		Title:       r.FormValue("title"),
		Prodi:       firstNonEmpty(r.FormValue("selectedProdi"), r.FormValue("prodi")),
		Nama:        r.FormValue("nama"),
		NIM:         r.FormValue("nim"),
		Description: r.FormValue("description"),
		UploadType:  models.UploadType(r.FormValue("uploadType")),
		YoutubeURL:  r.FormValue("youtubeLink"),
	}

	if req.UploadType == models.UploadTypeFile {
		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			req.File = file
			req.FileName = header.Filename
			req.FileSize = header.Size
		case errors.Is(err, http.ErrMissingFile):
			// reported by the service as a validation error
		default:
			writeError(w, r, http.StatusBadRequest, msgInvalidRequest)
			return
		}
	}

	h.createKarya(w, r, req)
}

func (h *Handler) createKaryaFromJSON(w http.ResponseWriter, r *http.Request) {
	var body createKaryaJSON
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	h.createKarya(w, r, &models.CreateKaryaRequest{
		Title:       body.Title,
		Prodi:       firstNonEmpty(body.SelectedProdi, body.Prodi),
		Nama:        body.Nama,
		NIM:         body.NIM,
		Description: body.Description,
		UploadType:  models.UploadType(body.UploadType),
		YoutubeURL:  body.YoutubeLink,
	})
}

func (h *Handler) createKarya(w http.ResponseWriter, r *http.Request, req *models.CreateKaryaRequest) {
	karya, err := h.karyaService.CreateKarya(r.Context(), req)
	if err != nil {
		h.handleKaryaError(w, r, err, msgKaryaCreateFailed)
		return
	}

	writeJSON(w, r, http.StatusCreated, models.KaryaResponse{
		Message: msgKaryaCreated,
		Data:    karya,
	})
}

func (h *Handler) ListKarya(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.KaryaFilter{
		Prodi:  decodeQueryValue(query.Get("prodi")),
		Status: decodeQueryValue(query.Get("status")),
	}

	karyas, err := h.karyaService.ListKarya(r.Context(), filter)
	if err != nil {
		h.handleKaryaError(w, r, err, msgKaryaListFailed)
		return
	}

	writeJSON(w, r, http.StatusOK, karyas)
}

func (h *Handler) UpdateKaryaStatus(w http.ResponseWriter, r *http.Request) {
	karyaID := chi.URLParam(r, "id")

	var req models.UpdateKaryaStatusRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	karya, err := h.karyaService.UpdateKaryaStatus(r.Context(), karyaID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, r, http.StatusBadRequest, msgKaryaStatusInvalid)
			return
		}
		h.handleKaryaError(w, r, err, msgKaryaUpdateFailed)
		return
	}

	writeJSON(w, r, http.StatusOK, models.KaryaResponse{
		Message: msgKaryaStatusUpdated,
		Data:    karya,
	})
}

func (h *Handler) DeleteKarya(w http.ResponseWriter, r *http.Request) {
	karyaID := chi.URLParam(r, "id")

	if err := h.karyaService.DeleteKarya(r.Context(), karyaID); err != nil {
		h.handleKaryaError(w, r, err, msgKaryaDeleteFailed)
		return
	}

	writeJSON(w, r, http.StatusOK, models.MessageResponse{Message: msgKaryaDeleted})
}

func (h *Handler) handleKaryaError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, r, http.StatusBadRequest, karyaValidationMessage(err))
	case errors.Is(err, service.ErrNotFound):
		writeError(w, r, http.StatusNotFound, msgKaryaNotFound)
	default:
		h.logError(r, err, failure)
		writeError(w, r, http.StatusInternalServerError, failure)
	}
}

func karyaValidationMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		return msgTitleRequired
	case errors.Is(err, service.ErrProdiRequired):
		return msgProdiRequired
	case errors.Is(err, service.ErrFileRequired):
		return msgFileRequired
	case errors.Is(err, service.ErrYoutubeRequired):
		return msgYoutubeRequired
	case errors.Is(err, service.ErrUploadType):
		return msgUploadTypeInvalid
	default:
		return msgKaryaInvalid
	}
}

// decodeQueryValue undoes one more level of percent-encoding that some clients
// apply on top of the query string encoding. Malformed input is used as is.
func decodeQueryValue(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
