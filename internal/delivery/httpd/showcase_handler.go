package httpd

import (
	"net/http"
)

const msgExhibitionsFailed = "Gagal mengambil data pameran."

func (h *Handler) GetLandingPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.showcaseService.LandingPage())
}

func (h *Handler) GetExhibitions(w http.ResponseWriter, r *http.Request) {
	exhibitions, err := h.showcaseService.ListExhibitions(r.Context())
	if err != nil {
		h.logError(r, err, msgExhibitionsFailed)
		writeError(w, r, http.StatusInternalServerError, msgExhibitionsFailed)
		return
	}

	writeJSON(w, r, http.StatusOK, exhibitions)
}
