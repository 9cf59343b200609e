package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kimdaedan/exhibition-backend/internal/config"
	"github.com/kimdaedan/exhibition-backend/internal/database"
	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/repository"
	"github.com/kimdaedan/exhibition-backend/internal/service/storage"
)

type recordingClient struct {
	mu     sync.Mutex
	events []models.KaryaEvent
}

func (c *recordingClient) PublishKaryaEvent(_ context.Context, event *models.KaryaEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, *event)
	return nil
}

func (c *recordingClient) Close() error { return nil }

func (c *recordingClient) types() []models.KaryaEventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.KaryaEventType, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	karyaRepo   repository.KaryaRepository
	accountRepo repository.AccountRepository
	fs          afero.Fs
	uploads     UploadService
	events      *recordingClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "exhibition.db"),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := database.NewMigrator(cfg)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	logger := zerolog.Nop()
	fs := afero.NewMemMapFs()

	return &testEnv{
		karyaRepo:   repository.NewKaryaRepository(db, cfg.Driver, logger),
		accountRepo: repository.NewAccountRepository(db, cfg.Driver, logger),
		fs:          fs,
		uploads:     NewUploadService(storage.NewLocalStorageFs(fs), logger),
		events:      &recordingClient{},
	}
}

func (e *testEnv) karyaService(cfg KaryaConfig) KaryaService {
	return NewKaryaService(e.karyaRepo, e.uploads, e.events, zerolog.Nop(), cfg)
}

func (e *testEnv) authService() AuthService {
	return NewAuthService(e.accountRepo, NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
