package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// FileStore writes artifacts below a directory. Keys are slash-separated
// relative paths.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir ("" means the working directory).
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Put writes data to dir/key, creating parent directories.
func (s *FileStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := errors.ValidateObjectKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageFailed, err, "create directory for %s", key)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageFailed, err, "write %s", path)
	}
	return path, nil
}

var _ Store = (*FileStore)(nil)
