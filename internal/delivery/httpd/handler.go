package httpd

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/service"
)

const (
	msgInternalError  = "Terjadi kesalahan pada server."
	msgInvalidRequest = "Format request tidak valid."
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	ServiceName   string
	MaxFormMemory int64
	UploadsPrefix string
}

type Handler struct {
	karyaService    service.KaryaService
	authService     service.AuthService
	showcaseService service.ShowcaseService
	uploadService   service.UploadService
	db              Pinger
	logger          zerolog.Logger
	config          Config
}

func NewHandler(
	karyaService service.KaryaService,
	authService service.AuthService,
	showcaseService service.ShowcaseService,
	uploadService service.UploadService,
	db Pinger,
	logger zerolog.Logger,
	config Config,
) *Handler {
	if config.MaxFormMemory <= 0 {
		config.MaxFormMemory = 32 << 20
	}
	if config.UploadsPrefix == "" {
		config.UploadsPrefix = "/uploads"
	}

	return &Handler{
		karyaService:    karyaService,
		authService:     authService,
		showcaseService: showcaseService,
		uploadService:   uploadService,
		db:              db,
		logger:          logger,
		config:          config,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)
	router.Get("/ready", h.ReadinessCheck)

	router.Get(strings.TrimRight(h.config.UploadsPrefix, "/")+"/{name}", h.ServeUpload)

	router.Route("/api", func(api chi.Router) {
		api.Get("/landing-page", h.GetLandingPage)
		api.Get("/exhibitions", h.GetExhibitions)

		api.Route("/karya", func(r chi.Router) {
			r.Get("/", h.ListKarya)
			r.Post("/", h.CreateKarya)
			r.Patch("/{id}/status", h.UpdateKaryaStatus)
			r.Delete("/{id}", h.DeleteKarya)
		})

		api.Post("/register", h.Register)
		api.Post("/login", h.Login)
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, models.ErrorResponse{Error: message})
}

func (h *Handler) logError(r *http.Request, err error, msg string) {
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = &h.logger
	}
	logger.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
}
