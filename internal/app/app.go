package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/kimdaedan/exhibition-backend/internal/config"
	"github.com/kimdaedan/exhibition-backend/internal/delivery/httpd"
	appmw "github.com/kimdaedan/exhibition-backend/internal/middleware"
	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/repository"
	"github.com/kimdaedan/exhibition-backend/internal/service"
	"github.com/kimdaedan/exhibition-backend/internal/service/integration"
	"github.com/kimdaedan/exhibition-backend/internal/service/storage"
)

const serviceName = "exhibition-backend"

type App struct {
	server         *http.Server
	logger         zerolog.Logger
	config         *config.Config
	db             *sql.DB
	rabbitmqClient integration.RabbitMQClient
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	fileStorage, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	rabbitmqClient := newRabbitMQClient(cfg.RabbitMQ, log)

	driver := cfg.Database.Driver
	karyaRepo := repository.NewKaryaRepository(db, driver, log)
	accountRepo := repository.NewAccountRepository(db, driver, log)
	store := repository.NewPostgresRepository(db, driver, log)

	uploadService := service.NewUploadService(fileStorage, log)
	karyaService := service.NewKaryaService(
		karyaRepo,
		uploadService,
		rabbitmqClient,
		log,
		service.KaryaConfig{RemoveFileOnDelete: cfg.Uploads.RemoveOnDelete},
	)
	authService := service.NewAuthService(
		accountRepo,
		service.NewPasswordHasher(cfg.Auth.BcryptCost),
		log,
	)
	showcaseService := service.NewShowcaseService(karyaRepo, service.ShowcaseConfig{
		Landing: models.LandingPage{
			Title:           cfg.Landing.Title,
			Subtitle:        cfg.Landing.Subtitle,
			BackgroundImage: cfg.Landing.BackgroundImage,
		},
		ImagePrefix:  cfg.Exhibitions.ImagePrefix,
		DefaultImage: cfg.Exhibitions.DefaultImage,
		LinkPrefix:   cfg.Exhibitions.LinkPrefix,
	})

	handler := httpd.NewHandler(
		karyaService,
		authService,
		showcaseService,
		uploadService,
		store,
		log,
		httpd.Config{
			ServiceName:   serviceName,
			MaxFormMemory: cfg.Server.MaxFormMemory,
			UploadsPrefix: cfg.Uploads.PublicPrefix,
		},
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appmw.RequestLogger(log))
	router.Use(appmw.Recovery(log))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:         server,
		logger:         log,
		config:         cfg,
		db:             db,
		rabbitmqClient: rabbitmqClient,
	}, nil
}

func newStorage(cfg *config.Config) (storage.StorageInterface, error) {
	switch cfg.Storage.Provider {
	case "minio":
		s, err := storage.NewMinIOStorage(storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.Storage.BucketName,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.MinIO.UseSSL,
			Timeout:   cfg.MinIO.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio storage: %w", err)
		}
		return s, nil
	default:
		s, err := storage.NewLocalStorage(cfg.Uploads.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		return s, nil
	}
}

func newRabbitMQClient(cfg config.RabbitMQConfig, log zerolog.Logger) integration.RabbitMQClient {
	if !cfg.Enabled {
		return integration.NewNoopClient()
	}

	client, err := integration.NewRabbitMQClient(cfg.URL, cfg.Exchange, log)
	if err != nil {
		// events are best effort; the API keeps working without a broker
		log.Error().Err(err).Msg("Failed to create RabbitMQ client, karya events disabled")
		return integration.NewNoopClient()
	}

	return client
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting exhibition backend on %s", a.config.Server.Address)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down exhibition backend...")

	err := a.server.Shutdown(ctx)

	if a.rabbitmqClient != nil {
		if closeErr := a.rabbitmqClient.Close(); closeErr != nil {
			a.logger.Error().Err(closeErr).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Error().Err(closeErr).Msg("Failed to close database connection")
		}
	}

	return err
}
