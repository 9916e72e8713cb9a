package secrets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore reads secrets from "<id>.json" files in a directory.
// The file is read again on every lookup.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store for the given directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// GetSecret returns the content of the secret's file.
func (s *FileStore) GetSecret(ctx context.Context, id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("Invalid secret id %q", id)
	}

	path := filepath.Join(s.Dir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, id)
		}

		return "", fmt.Errorf("Failed to read secret file %q: %w", path, err)
	}

	return string(data), nil
}
