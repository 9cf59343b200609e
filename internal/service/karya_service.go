package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/repository"
	"github.com/kimdaedan/exhibition-backend/internal/service/integration"
)

type KaryaService interface {
	CreateKarya(ctx context.Context, req *models.CreateKaryaRequest) (*models.Karya, error)
	ListKarya(ctx context.Context, filter models.KaryaFilter) ([]models.Karya, error)
	UpdateKaryaStatus(ctx context.Context, id, status string) (*models.Karya, error)
	DeleteKarya(ctx context.Context, id string) error
}

type KaryaConfig struct {
	// RemoveFileOnDelete also deletes the stored upload of a deleted karya.
	// Off by default: uploads are retained.
	RemoveFileOnDelete bool
}

type karyaService struct {
	karyaRepo      repository.KaryaRepository
	uploadService  UploadService
	rabbitmqClient integration.RabbitMQClient
	logger         zerolog.Logger
	config         KaryaConfig
}

func NewKaryaService(
	karyaRepo repository.KaryaRepository,
	uploadService UploadService,
	rabbitmqClient integration.RabbitMQClient,
	logger zerolog.Logger,
	config KaryaConfig,
) KaryaService {
	return &karyaService{
		karyaRepo:      karyaRepo,
		uploadService:  uploadService,
		rabbitmqClient: rabbitmqClient,
		logger:         logger,
		config:         config,
	}
}

func (s *karyaService) CreateKarya(ctx context.Context, req *models.CreateKaryaRequest) (*models.Karya, error) {
	if err := validateCreateKarya(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	karya := &models.Karya{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Prodi:       strings.TrimSpace(req.Prodi),
		Nama:        strings.TrimSpace(req.Nama),
		NIM:         strings.TrimSpace(req.NIM),
		Description: req.Description,
		UploadType:  req.UploadType,
		Status:      models.KaryaStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch req.UploadType {
	case models.UploadTypeFile:
		storedName, err := s.uploadService.Store(ctx, req.FileName, req.File, req.FileSize)
		if err != nil {
			return nil, err
		}
		karya.FilePath = &storedName
	case models.UploadTypeYoutube:
		url := strings.TrimSpace(req.YoutubeURL)
		karya.YoutubeURL = &url
	}

	if err := s.karyaRepo.Create(ctx, karya); err != nil {
		if karya.FilePath != nil {
			if rmErr := s.uploadService.Remove(ctx, *karya.FilePath); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("stored_name", *karya.FilePath).Msg("Failed to clean up orphaned upload")
			}
		}
		return nil, fmt.Errorf("failed to create karya: %w", err)
	}

	s.logger.Info().
		Str("karya_id", karya.ID).
		Str("prodi", karya.Prodi).
		Str("upload_type", karya.UploadType.String()).
		Msg("Karya created")

	s.publish(ctx, models.KaryaEventCreated, karya)

	return karya, nil
}

func validateCreateKarya(req *models.CreateKaryaRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(req.Prodi) == "" {
		return ErrProdiRequired
	}

	switch req.UploadType {
	case models.UploadTypeFile:
		if req.File == nil {
			return ErrFileRequired
		}
	case models.UploadTypeYoutube:
		if strings.TrimSpace(req.YoutubeURL) == "" {
			return ErrYoutubeRequired
		}
	default:
		return ErrUploadType
	}

	return nil
}

func (s *karyaService) ListKarya(ctx context.Context, filter models.KaryaFilter) ([]models.Karya, error) {
	karyas, err := s.karyaRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list karya: %w", err)
	}
	return karyas, nil
}

func (s *karyaService) UpdateKaryaStatus(ctx context.Context, id, status string) (*models.Karya, error) {
	newStatus := models.KaryaStatus(status)
	if !newStatus.IsModeration() {
		return nil, fmt.Errorf("%w: status must be Approved or Rejected", ErrValidation)
	}
	if !isKaryaID(id) {
		return nil, ErrNotFound
	}

	if err := s.karyaRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update karya status: %w", err)
	}

	karya, err := s.karyaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get karya: %w", err)
	}
	if karya == nil {
		// deleted between the update and the read
		return nil, ErrNotFound
	}

	s.logger.Info().
		Str("karya_id", id).
		Str("status", status).
		Msg("Karya status updated")

	s.publish(ctx, models.KaryaEventStatusUpdated, karya)

	return karya, nil
}

func (s *karyaService) DeleteKarya(ctx context.Context, id string) error {
	if !isKaryaID(id) {
		return ErrNotFound
	}

	karya, err := s.karyaRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get karya: %w", err)
	}
	if karya == nil {
		return ErrNotFound
	}

	if err := s.karyaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete karya: %w", err)
	}

	if s.config.RemoveFileOnDelete && karya.FilePath != nil {
		if err := s.uploadService.Remove(ctx, *karya.FilePath); err != nil {
			s.logger.Warn().Err(err).Str("karya_id", id).Msg("Failed to remove stored file")
		}
	}

	s.logger.Info().Str("karya_id", id).Msg("Karya deleted")

	s.publish(ctx, models.KaryaEventDeleted, karya)

	return nil
}

func (s *karyaService) publish(ctx context.Context, eventType models.KaryaEventType, karya *models.Karya) {
	event := &models.KaryaEvent{
		Type:      eventType,
		KaryaID:   karya.ID,
		Prodi:     karya.Prodi,
		Status:    karya.Status.String(),
		Timestamp: time.Now().Unix(),
	}

	if err := s.rabbitmqClient.PublishKaryaEvent(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Str("karya_id", karya.ID).
			Str("event", string(eventType)).
			Msg("Failed to publish karya event")
	}
}

// isKaryaID reports whether id can name a stored karya. Postgres rejects
// non-UUID input for the id column instead of matching nothing.
func isKaryaID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
