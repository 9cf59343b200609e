package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/repository"
)

type ShowcaseService interface {
	LandingPage() models.LandingPage
	ListExhibitions(ctx context.Context) ([]models.Exhibition, error)
}

type ShowcaseConfig struct {
	Landing      models.LandingPage
	ImagePrefix  string
	DefaultImage string
	LinkPrefix   string
}

type showcaseService struct {
	karyaRepo repository.KaryaRepository
	config    ShowcaseConfig
}

func NewShowcaseService(karyaRepo repository.KaryaRepository, config ShowcaseConfig) ShowcaseService {
	return &showcaseService{
		karyaRepo: karyaRepo,
		config:    config,
	}
}

func (s *showcaseService) LandingPage() models.LandingPage {
	return s.config.Landing
}

func (s *showcaseService) ListExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	karyas, err := s.karyaRepo.List(ctx, models.KaryaFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list karya: %w", err)
	}

	exhibitions := make([]models.Exhibition, 0, len(karyas))
	for _, k := range karyas {
		image := s.config.DefaultImage
		if k.FilePath != nil && *k.FilePath != "" {
			image = joinURL(s.config.ImagePrefix, *k.FilePath)
		}

		exhibitions = append(exhibitions, models.Exhibition{
			ID:        k.ID,
			Image:     image,
			Title:     k.Title,
			Organizer: k.Prodi,
			Link:      joinURL(s.config.LinkPrefix, k.ID),
		})
	}

	return exhibitions, nil
}

func joinURL(prefix, name string) string {
	return strings.TrimRight(prefix, "/") + "/" + name
}
