package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kimdaedan/exhibition-backend/internal/service/storage"
)

type UploadService interface {
	Store(ctx context.Context, originalName string, data io.Reader, size int64) (string, error)
	Open(ctx context.Context, storedName string) (io.ReadCloser, int64, error)
	Remove(ctx context.Context, storedName string) error
}

type uploadService struct {
	storage storage.StorageInterface
	logger  zerolog.Logger
}

func NewUploadService(storage storage.StorageInterface, logger zerolog.Logger) UploadService {
	return &uploadService{
		storage: storage,
		logger:  logger,
	}
}

func (s *uploadService) Store(ctx context.Context, originalName string, data io.Reader, size int64) (string, error) {
	storedName := generateUniqueFileName(originalName)

	if err := s.storage.Upload(ctx, storedName, data, size); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info().
		Str("original_name", originalName).
		Str("stored_name", storedName).
		Int64("size", size).
		Msg("File stored")

	return storedName, nil
}

func (s *uploadService) Open(ctx context.Context, storedName string) (io.ReadCloser, int64, error) {
	if !isPlainName(storedName) {
		return nil, 0, ErrNotFound
	}

	rc, size, err := s.storage.Download(ctx, storedName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to open upload: %w", err)
	}

	return rc, size, nil
}

func (s *uploadService) Remove(ctx context.Context, storedName string) error {
	if !isPlainName(storedName) {
		return ErrNotFound
	}

	exists, err := s.storage.Exists(ctx, storedName)
	if err != nil {
		return fmt.Errorf("failed to check upload: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	if err := s.storage.Delete(ctx, storedName); err != nil {
		return fmt.Errorf("failed to remove upload: %w", err)
	}

	s.logger.Info().Str("stored_name", storedName).Msg("File removed")
	return nil
}

// generateUniqueFileName keeps the original base name and extension and adds a
// nanosecond timestamp plus a random suffix, so concurrent uploads of the same
// file never collide.
func generateUniqueFileName(originalName string) string {
	// browsers on Windows may send a full client path
	if i := strings.LastIndexAny(originalName, `/\`); i >= 0 {
		originalName = originalName[i+1:]
	}

	ext := filepath.Ext(originalName)
	name := strings.TrimSuffix(originalName, ext)

	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "..", "")
	if name == "" {
		name = "file"
	}

	timestamp := time.Now().UnixNano()
	suffix := uuid.New().String()[:8]

	return fmt.Sprintf("%s_%d_%s%s", name, timestamp, suffix, ext)
}

func isPlainName(name string) bool {
	return name != "" &&
		!strings.ContainsAny(name, `/\`) &&
		!strings.Contains(name, "..")
}
