package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

type StorageInterface interface {
	Upload(ctx context.Context, key string, data io.Reader, size int64) error
	// Download returns ErrObjectNotFound for unknown keys.
	Download(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
