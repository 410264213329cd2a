package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists uploaded files and maps them to public URLs.
type Store interface {
	// Save writes content under name and returns the public path.
	Save(name string, content []byte) (string, error)
	// Remove deletes the file behind a public path. Unknown paths are a no-op.
	Remove(publicPath string) error
}

// LocalStore keeps uploads on local disk, served back under a fixed URL
// prefix by the HTTP layer.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (s *LocalStore) Save(name string, content []byte) (string, error) {
	// filepath.Base guards against path traversal in client-supplied names.
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name")
	}

	dst := filepath.Join(s.dir, name)
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return "", fmt.Errorf("write upload %q: %w", name, err)
	}

	return s.urlPrefix + "/" + name, nil
}

func (s *LocalStore) Remove(publicPath string) error {
	name := filepath.Base(publicPath)
	if name == "." || name == string(filepath.Separator) {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload %q: %w", name, err)
	}
	return nil
}

// Dir exposes the on-disk directory for static file serving.
func (s *LocalStore) Dir() string { return s.dir }
