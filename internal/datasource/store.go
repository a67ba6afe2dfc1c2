// Package datasource fetches dataset documents from blob storage and stores
// rendered reports next to them.
package datasource

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when a dataset or report object does not exist.
var ErrNotFound = errors.New("object not found")

// Store abstracts blob storage for dataset documents and rendered reports.
type Store interface {
	GetDataset(ctx context.Context, key string) ([]byte, error)
	PutDataset(ctx context.Context, key string, data []byte) error
	PutReport(ctx context.Context, reportID, name, contentType string, data []byte) error
	GetReport(ctx context.Context, reportID, name string) ([]byte, error)
}

// Object key layout shared by every backend.
func datasetKey(key string) string {
	return path.Join("datasets", cleanKey(key))
}

func reportKey(reportID, name string) string {
	return path.Join("reports", cleanKey(reportID), cleanKey(name))
}

// cleanKey keeps keys inside their prefix.
func cleanKey(k string) string {
	k = path.Clean("/" + strings.ReplaceAll(k, "\\", "/"))
	return strings.TrimPrefix(k, "/")
}

// LocalStore implements Store using the local filesystem.
// Useful for development and testing.
type LocalStore struct {
	BaseDir string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{BaseDir: baseDir}
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(key))
}

func (s *LocalStore) put(key string, data []byte) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return eris.Wrapf(err, "local: create directory for %s", key)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return eris.Wrapf(err, "local: write %s", key)
	}
	return nil
}

func (s *LocalStore) get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, eris.Wrapf(ErrNotFound, "local: %s", key)
		}
		return nil, eris.Wrapf(err, "local: read %s", key)
	}
	return data, nil
}

// GetDataset retrieves a dataset document.
func (s *LocalStore) GetDataset(ctx context.Context, key string) ([]byte, error) {
	return s.get(datasetKey(key))
}

// PutDataset stores a dataset document.
func (s *LocalStore) PutDataset(ctx context.Context, key string, data []byte) error {
	return s.put(datasetKey(key), data)
}

// PutReport stores one rendered report file.
func (s *LocalStore) PutReport(ctx context.Context, reportID, name, contentType string, data []byte) error {
	return s.put(reportKey(reportID, name), data)
}

// GetReport retrieves one rendered report file.
func (s *LocalStore) GetReport(ctx context.Context, reportID, name string) ([]byte, error) {
	return s.get(reportKey(reportID, name))
}
