package main

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"

	"github.com/damacus/iron-gallery/internal/models"
	"github.com/damacus/iron-gallery/internal/services"
)

// MockMinioClient implements both MinioClient and MinioAdminClient interfaces for testing
type MockMinioClient struct {
	mock.Mock
}

// MinioAdminClient methods

func (m *MockMinioClient) ServerInfo(ctx context.Context, opts ...func(*madmin.ServerInfoOpts)) (madmin.InfoMessage, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(madmin.InfoMessage), args.Error(1)
}

func (m *MockMinioClient) DataUsageInfo(ctx context.Context) (madmin.DataUsageInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(madmin.DataUsageInfo), args.Error(1)
}

// MinioClient methods

func (m *MockMinioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioClient) ListObjectsPaginated(ctx context.Context, bucketName string, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).(services.ListObjectsResult), args.Error(1)
}

func (m *MockMinioClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

// MockMetadataStore implements storage.FolderMetadataStore for testing
type MockMetadataStore struct {
	mock.Mock
}

func (m *MockMetadataStore) Upsert(ctx context.Context, name string, description *string) (models.FolderMetadata, error) {
	args := m.Called(ctx, name, description)
	return args.Get(0).(models.FolderMetadata), args.Error(1)
}

func (m *MockMetadataStore) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockMetadataStore) List(ctx context.Context) ([]models.FolderMetadata, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.FolderMetadata)
	return rows, args.Error(1)
}

func (m *MockMetadataStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMetadataStore) Close() {
	m.Called()
}

// memoryBucket is a stateful MinioClient backed by a map, for journeys that
// need deletions to show up in later listings.
type memoryBucket struct {
	mu      sync.Mutex
	objects map[string]minio.ObjectInfo
}

func newMemoryBucket(objs ...minio.ObjectInfo) *memoryBucket {
	b := &memoryBucket{objects: make(map[string]minio.ObjectInfo, len(objs))}
	for _, obj := range objs {
		b.objects[obj.Key] = obj
	}
	return b
}

func (b *memoryBucket) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return true, nil
}

func (b *memoryBucket) ListObjectsPaginated(ctx context.Context, bucketName string, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		if strings.HasPrefix(key, opts.Prefix) && key > opts.ContinuationToken {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var result services.ListObjectsResult
	for _, key := range keys {
		if opts.MaxKeys > 0 && len(result.Objects) == opts.MaxKeys {
			result.IsTruncated = true
			result.NextContinuationToken = result.Objects[len(result.Objects)-1].Key
			break
		}
		result.Objects = append(result.Objects, b.objects[key])
	}
	return result, nil
}

func (b *memoryBucket) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, objectName)
	return nil
}

func (b *memoryBucket) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
