package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/service"
)

const (
	msgRegistered      = "Registrasi berhasil!"
	msgLoggedIn        = "Login berhasil!"
	msgRegisterMissing = "Semua field wajib diisi."
	msgLoginMissing    = "NIM dan password wajib diisi."
	msgNIMTaken        = "NIM sudah terdaftar."
	msgBadCredentials  = "NIM atau password salah."
	msgRegisterFailed  = "Gagal melakukan registrasi."
	msgLoginFailed     = "Gagal melakukan login."
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	account, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, r, http.StatusBadRequest, msgRegisterMissing)
		case errors.Is(err, service.ErrConflict):
			writeError(w, r, http.StatusBadRequest, msgNIMTaken)
		default:
			h.logError(r, err, msgRegisterFailed)
			writeError(w, r, http.StatusInternalServerError, msgRegisterFailed)
		}
		return
	}

	writeJSON(w, r, http.StatusCreated, models.AccountResponse{
		Message: msgRegistered,
		User:    account,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	account, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, r, http.StatusBadRequest, msgLoginMissing)
		case errors.Is(err, service.ErrUnauthenticated):
			writeError(w, r, http.StatusUnauthorized, msgBadCredentials)
		default:
			h.logError(r, err, msgLoginFailed)
			writeError(w, r, http.StatusInternalServerError, msgLoginFailed)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, models.AccountResponse{
		Message: msgLoggedIn,
		User:    account,
	})
}
