package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSBackend stores blobs as plain files below a base directory, the way the
// site historically kept uploads under public/uploads/<category>/.
type FSBackend struct {
	baseDir string
}

// NewFSBackend creates the base directory if needed and returns the backend.
func NewFSBackend(baseDir string) (*FSBackend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}
	return &FSBackend{baseDir: baseDir}, nil
}

func (b *FSBackend) path(key string) string {
	return filepath.Join(b.baseDir, filepath.FromSlash(key))
}

func (b *FSBackend) Upload(ctx context.Context, key string, reader io.Reader) error {
	path := b.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", key, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write file %s: %w", key, err)
	}
	return nil
}

func (b *FSBackend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(b.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", key, err)
	}
	return file, nil
}

func (b *FSBackend) Delete(ctx context.Context, key string) error {
	err := os.Remove(b.path(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to remove file %s: %w", key, err)
	}
	return nil
}
