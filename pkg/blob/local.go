package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps blobs on disk under a base directory. The directory is
// served statically by the HTTP server, so URLFor just joins the public base.
type LocalStore struct {
	baseDir string
	baseURL string
}

var _ Store = &LocalStore{}

func NewLocalStore(baseDir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, data []byte, filename string) (string, error) {
	ext := filepath.Ext(filename)
	ref := uuid.New().String() + ext

	path := filepath.Join(s.baseDir, ref)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return ref, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	// Refs are generated server side, but never trust them as paths
	ref = filepath.Base(ref)
	err := os.Remove(filepath.Join(s.baseDir, ref))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) URLFor(ref string) string {
	return s.baseURL + "/uploads/" + filepath.Base(ref)
}
