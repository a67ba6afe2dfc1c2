package datasource

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/rotisserie/eris"
)

// GCSStore implements Store using Google Cloud Storage.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore creates a GCS-backed Store.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "gcs: create client")
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) put(ctx context.Context, key, contentType string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return eris.Wrapf(err, "gcs: write %s", key)
	}
	if err := w.Close(); err != nil {
		return eris.Wrapf(err, "gcs: close %s", key)
	}
	return nil
}

func (s *GCSStore) get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, eris.Wrapf(ErrNotFound, "gcs: %s", key)
		}
		return nil, eris.Wrapf(err, "gcs: read %s", key)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrapf(err, "gcs: read %s", key)
	}
	return data, nil
}

func (s *GCSStore) GetDataset(ctx context.Context, key string) ([]byte, error) {
	return s.get(ctx, datasetKey(key))
}

func (s *GCSStore) PutDataset(ctx context.Context, key string, data []byte) error {
	return s.put(ctx, datasetKey(key), "application/yaml", data)
}

func (s *GCSStore) PutReport(ctx context.Context, reportID, name, contentType string, data []byte) error {
	return s.put(ctx, reportKey(reportID, name), contentType, data)
}

func (s *GCSStore) GetReport(ctx context.Context, reportID, name string) ([]byte, error) {
	return s.get(ctx, reportKey(reportID, name))
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
