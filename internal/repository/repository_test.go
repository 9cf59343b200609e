package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kimdaedan/exhibition-backend/internal/config"
	"github.com/kimdaedan/exhibition-backend/internal/database"
	"github.com/kimdaedan/exhibition-backend/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
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

	return db
}

func newKarya(id, prodi string, status models.KaryaStatus, createdAt time.Time) *models.Karya {
	url := "https://youtu.be/" + id
	return &models.Karya{
		ID:          id,
		Title:       "Karya " + id,
		Prodi:       prodi,
		Nama:        "Budi",
		NIM:         "4311901001",
		Description: "deskripsi",
		UploadType:  models.UploadTypeYoutube,
		YoutubeURL:  &url,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

var nopLogger = zerolog.Nop()
