// Package storage implements the attachment byte store. Uploaded files live
// on the local filesystem outside the document store and are referenced from
// project documents by URL only.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore saves uploads under a base directory and maps them to URLs under
// a public prefix (served statically by the router).
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore ensures dir exists and returns a store publishing files under
// urlPrefix (e.g. "/uploads").
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Save writes the content to disk under a random name that keeps the original
// extension, and returns the stored name and retrieval URL. Stored files are
// never deleted; no removal path exists.
func (s *LocalStore) Save(ctx context.Context, originalName string, content io.Reader) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	storedName := uuid.NewString() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}

	return storedName, path.Join(s.urlPrefix, storedName), nil
}

// Dir returns the base directory, for wiring the static file route.
func (s *LocalStore) Dir() string {
	return s.dir
}
