package infra

// gcs.go — evidentiary photo object store backed by Google Cloud Storage.
// Photos are never consulted by the ledger logic itself; callers treat upload
// failures as degradable (empty photo reference), not fatal.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// PhotoStore is the contract the services use. The GCS implementation is the
// only production one; tests substitute an in-memory stub.
type PhotoStore interface {
	// Upload writes the object under key and returns its stable public URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// GCSPhotoStore uploads into a single bucket laid out as
// batches/{batchID}/{fileName}. Public access relies on the bucket having
// uniform "allUsers: Storage Object Viewer" access, so uploaded objects are
// readable without per-object ACL changes.
type GCSPhotoStore struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string // defaults to https://storage.googleapis.com
}

// NewGCSPhotoStore connects with Application Default Credentials, or with an
// explicit service account file when credsFile is non-empty.
func NewGCSPhotoStore(ctx context.Context, bucket, publicBaseURL, credsFile string) (*GCSPhotoStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("gcs: bucket is empty")
	}

	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: new client: %w", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = "https://storage.googleapis.com"
	}
	return &GCSPhotoStore{
		client:        client,
		bucket:        strings.TrimSpace(bucket),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *GCSPhotoStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: close %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *GCSPhotoStore) publicURL(key string) string {
	// Escape each path segment but keep the separators readable.
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, strings.Join(parts, "/"))
}

func (s *GCSPhotoStore) Close() error { return s.client.Close() }
