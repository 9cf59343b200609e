package httpd

import (
	"net/http"
	"time"

	"github.com/kimdaedan/exhibition-backend/internal/models"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   h.config.ServiceName,
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{
		Status:    "ready",
		Service:   h.config.ServiceName,
		Timestamp: time.Now().UTC().Unix(),
		Database:  "up",
	}

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("Database ping failed")
		response.Status = "not ready"
		response.Database = "down"
		writeJSON(w, r, http.StatusServiceUnavailable, response)
		return
	}

	writeJSON(w, r, http.StatusOK, response)
}
