//go:build integration

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires Docker. Run with: go test -tags integration ./internal/service/storage
func newMinIOConfig(t *testing.T) MinIOConfig {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "could not connect to docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "RELEASE.2024-01-31T20-20-33Z",
		Cmd:        []string{"server", "/data"},
		Env: []string{
			"MINIO_ROOT_USER=minio",
			"MINIO_ROOT_PASSWORD=minio123",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "could not start minio")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	endpoint := "localhost:" + resource.GetPort("9000/tcp")

	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		resp, err := http.Get("http://" + endpoint + "/minio/health/live")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("minio not ready: %d", resp.StatusCode)
		}
		return nil
	})
	require.NoError(t, err)

	return MinIOConfig{
		Endpoint:  endpoint,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "karya-uploads",
		Region:    "us-east-1",
		Timeout:   10 * time.Second,
	}
}

func TestMinIOStorage(t *testing.T) {
	cfg := newMinIOConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := NewMinIOStorage(cfg)
	require.NoError(t, err)

	ok, err := s.client.BucketExists(ctx, cfg.Bucket)
	require.NoError(t, err)
	assert.True(t, ok)

	// an existing bucket is reused
	_, err = NewMinIOStorage(cfg)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, s.Upload(ctx, "poster.png", strings.NewReader("png-bytes"), 9))

		exists, err := s.Exists(ctx, "poster.png")
		require.NoError(t, err)
		assert.True(t, exists)

		info, err := s.client.StatObject(ctx, cfg.Bucket, "poster.png", minio.StatObjectOptions{})
		require.NoError(t, err)
		assert.Equal(t, "image/png", info.ContentType)

		rc, size, err := s.Download(ctx, "poster.png")
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(body))
		assert.Equal(t, int64(9), size)
	})

	t.Run("unknown extension", func(t *testing.T) {
		require.NoError(t, s.Upload(ctx, "notes.unknownext", strings.NewReader("x"), 1))

		info, err := s.client.StatObject(ctx, cfg.Bucket, "notes.unknownext", minio.StatObjectOptions{})
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", info.ContentType)
	})

	t.Run("missing key", func(t *testing.T) {
		_, _, err := s.Download(ctx, "nope.png")
		assert.ErrorIs(t, err, ErrObjectNotFound)

		exists, err := s.Exists(ctx, "nope.png")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Upload(ctx, "a.txt", strings.NewReader("x"), 1))
		require.NoError(t, s.Delete(ctx, "a.txt"))

		exists, err := s.Exists(ctx, "a.txt")
		require.NoError(t, err)
		assert.False(t, exists)

		_, _, err = s.Download(ctx, "a.txt")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})
}
