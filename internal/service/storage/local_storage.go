package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// LocalStorage keeps uploads as flat files under a single directory.
type LocalStorage struct {
	fs afero.Fs
}

// NewLocalStorage roots the storage at dir on the OS filesystem, creating the
// directory when it does not exist yet.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return NewLocalStorageFs(afero.NewBasePathFs(osFs, dir)), nil
}

func NewLocalStorageFs(fsys afero.Fs) *LocalStorage {
	return &LocalStorage{fs: fsys}
}

func (s *LocalStorage) Upload(ctx context.Context, key string, data io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := s.fs.OpenFile(key, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", key, err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return f.Close()
}

func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	info, err := s.fs.Stat(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, ErrObjectNotFound
		}
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, ErrObjectNotFound
	}

	f, err := s.fs.Open(key)
	if err != nil {
		return nil, 0, err
	}

	return f, info.Size(), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.Remove(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return afero.Exists(s.fs, key)
}
