package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/damacus/iron-gallery/internal/logger"
	"github.com/damacus/iron-gallery/internal/models"
)

// ObjectGateway is the object-store side of the gallery.
type ObjectGateway interface {
	// List returns at most the configured number of objects under prefix.
	List(ctx context.Context, prefix string) ([]models.ObjectRecord, error)
	DeleteObject(ctx context.Context, id string) error
	// DeleteByPrefix removes every object whose key starts with prefix and
	// reports how many were removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// ObjectStore implements ObjectGateway on a single MinIO bucket. The object
// key doubles as the object id.
type ObjectStore struct {
	client     MinioClient
	bucket     string
	baseURL    string
	maxObjects int
}

var _ ObjectGateway = (*ObjectStore)(nil)

// NewObjectStore builds a gateway. baseURL is the public address of the
// bucket, without a trailing slash.
func NewObjectStore(client MinioClient, bucket, baseURL string, maxObjects int) *ObjectStore {
	if maxObjects <= 0 {
		maxObjects = DefaultPageSize
	}
	return &ObjectStore{
		client:     client,
		bucket:     bucket,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		maxObjects: maxObjects,
	}
}

// PublicBaseURL returns override when set, otherwise scheme://endpoint/bucket.
func PublicBaseURL(creds Credentials, bucket, override string) string {
	if override != "" {
		return strings.TrimSuffix(override, "/")
	}
	scheme := "http"
	if creds.secure() {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, creds.Endpoint, bucket)
}

// EnsureBucket fails when the configured bucket is missing or unreachable.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return mapError(err, "check bucket")
	}
	if !ok {
		return errs.New(errs.ErrKindNotFound, fmt.Sprintf("bucket %q does not exist", s.bucket))
	}
	return nil
}

func (s *ObjectStore) List(ctx context.Context, prefix string) ([]models.ObjectRecord, error) {
	res, err := s.client.ListObjectsPaginated(ctx, s.bucket, ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
		MaxKeys:   s.maxObjects,
	})
	if err != nil {
		return nil, mapError(err, "list objects")
	}
	if res.IsTruncated {
		logger.FromContext(ctx).With().
			Str("prefix", prefix).
			Int("max_objects", s.maxObjects).
			Logger().Warn("object listing truncated")
	}

	records := make([]models.ObjectRecord, 0, len(res.Objects))
	for _, obj := range res.Objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		records = append(records, s.record(obj))
	}
	return records, nil
}

func (s *ObjectStore) record(obj minio.ObjectInfo) models.ObjectRecord {
	return models.ObjectRecord{
		ID:        obj.Key,
		Key:       obj.Key,
		URL:       s.URL(obj.Key),
		Name:      gallery.BaseName(obj.Key),
		Size:      obj.Size,
		CreatedAt: obj.LastModified,
	}
}

// URL is the public address of key.
func (s *ObjectStore) URL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}

func (s *ObjectStore) DeleteObject(ctx context.Context, id string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return mapError(err, "remove object")
	}
	return nil
}

func (s *ObjectStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" || !strings.HasSuffix(prefix, "/") {
		return 0, errs.Invalid("delete prefix %q must end with a slash", prefix)
	}

	removed := 0
	token := ""
	for {
		page, err := s.client.ListObjectsPaginated(ctx, s.bucket, ListObjectsOptions{
			Prefix:            prefix,
			Recursive:         true,
			MaxKeys:           s.maxObjects,
			ContinuationToken: token,
		})
		if err != nil {
			return removed, mapError(err, "list objects for deletion")
		}
		for _, obj := range page.Objects {
			if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
				return removed, mapError(err, fmt.Sprintf("remove %s", obj.Key))
			}
			removed++
		}
		if !page.IsTruncated || page.NextContinuationToken == "" {
			return removed, nil
		}
		token = page.NextContinuationToken
	}
}
