//go:build integration

package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimdaedan/exhibition-backend/internal/config"
	"github.com/kimdaedan/exhibition-backend/internal/database"
	"github.com/kimdaedan/exhibition-backend/internal/models"
)

// Requires Docker. Run with: go test -tags integration ./internal/repository
func newPostgresDB(t *testing.T, driver string) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not connect to docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15",
		Env: []string{
			"POSTGRES_USER=exhibition_user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=exhibition_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "could not start postgres")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	port, err := strconv.Atoi(resource.GetPort("5432/tcp"))
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Driver:          driver,
		Host:            "localhost",
		Port:            port,
		User:            "exhibition_user",
		Password:        "secret",
		Name:            "exhibition_db",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}

	var db *sql.DB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = database.Open(cfg)
		return openErr
	})
	require.NoError(t, err, fmt.Sprintf("postgres not ready on port %d", port))
	t.Cleanup(func() { _ = db.Close() })

	m, err := database.NewMigrator(cfg)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	return db
}

func TestPostgresRepositories(t *testing.T) {
	for _, driver := range []string{"postgres", "pgx"} {
		t.Run(driver, func(t *testing.T) {
			ctx := testContext(t)
			db := newPostgresDB(t, driver)

			karyaRepo := NewKaryaRepository(db, driver, nopLogger)
			accountRepo := NewAccountRepository(db, driver, nopLogger)

			base := time.Now().UTC().Truncate(time.Microsecond)
			k1 := newKarya("7f1c0d4e-1d8a-4d0e-9a36-0b3c1e7c0a01", "TI", models.KaryaStatusPending, base)
			k2 := newKarya("7f1c0d4e-1d8a-4d0e-9a36-0b3c1e7c0a02", "TI", models.KaryaStatusPending, base.Add(time.Second))
			require.NoError(t, karyaRepo.Create(ctx, k1))
			require.NoError(t, karyaRepo.Create(ctx, k2))

			list, err := karyaRepo.List(ctx, models.KaryaFilter{Prodi: "TI"})
			require.NoError(t, err)
			assert.Equal(t, []string{k2.ID, k1.ID}, ids(list))

			require.NoError(t, karyaRepo.UpdateStatus(ctx, k1.ID, models.KaryaStatusApproved))
			assert.ErrorIs(t, karyaRepo.Delete(ctx, "7f1c0d4e-1d8a-4d0e-9a36-0b3c1e7c0aff"), ErrNotFound)
			assert.ErrorIs(t, karyaRepo.UpdateStatus(ctx, "7f1c0d4e-1d8a-4d0e-9a36-0b3c1e7c0aff", models.KaryaStatusRejected), ErrNotFound)

			missing, err := karyaRepo.GetByID(ctx, "7f1c0d4e-1d8a-4d0e-9a36-0b3c1e7c0aff")
			require.NoError(t, err)
			assert.Nil(t, missing)

			// the UUID column rejects malformed ids; KaryaService maps them to not found first
			_, err = karyaRepo.GetByID(ctx, "123")
			assert.Error(t, err)

			a := newAccount("7f1c0d4e-1d8a-4d0e-9a36-0b3c1e7c0b01", "4311901001")
			require.NoError(t, accountRepo.Create(ctx, a))

			dup := newAccount("7f1c0d4e-1d8a-4d0e-9a36-0b3c1e7c0b02", "4311901001")
			assert.ErrorIs(t, accountRepo.Create(ctx, dup), ErrDuplicate)
		})
	}
}
