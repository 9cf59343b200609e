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
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Account, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	hasher      PasswordHasher
	logger      zerolog.Logger
	// verified against for unknown NIMs so both login failures cost one hash check
	dummyHash   string
}

func NewAuthService(accountRepo repository.AccountRepository, hasher PasswordHasher, logger zerolog.Logger) AuthService {
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to precompute dummy password hash")
	}

	return &authService{
		accountRepo: accountRepo,
		hasher:      hasher,
		logger:      logger,
		dummyHash:   dummyHash,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	nim := strings.TrimSpace(req.NIM)
	nama := strings.TrimSpace(req.Nama)
	prodi := strings.TrimSpace(req.Prodi)

	if nim == "" || nama == "" || prodi == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nama, nim, prodi and password are required", ErrValidation)
	}

	// fast path only; the unique constraint on accounts.nim is what actually guards
	exists, err := s.accountRepo.ExistsByNIM(ctx, nim)
	if err != nil {
		return nil, fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		NIM:          nim,
		Nama:         nama,
		Prodi:        prodi,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info().
		Str("account_id", account.ID).
		Str("nim", account.NIM).
		Msg("Account registered")

	return account, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.Account, error) {
	nim := strings.TrimSpace(req.NIM)
	if nim == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nim and password are required", ErrValidation)
	}

	account, err := s.accountRepo.GetByNIM(ctx, nim)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		_, _ = s.hasher.Verify(req.Password, s.dummyHash)
		s.logger.Debug().Str("nim", nim).Msg("Login for unknown NIM")
		return nil, ErrUnauthenticated
	}

	ok, err := s.hasher.Verify(req.Password, account.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug().Str("nim", nim).Msg("Login with wrong password")
		return nil, ErrUnauthenticated
	}

	return account, nil
}
