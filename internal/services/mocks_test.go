package services

import (
	"context"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"

	"github.com/damacus/iron-gallery/internal/models"
)

// MockMinioClient implements both MinioClient and MinioAdminClient for testing
type MockMinioClient struct {
	mock.Mock
}

func (m *MockMinioClient) ServerInfo(ctx context.Context, opts ...func(*madmin.ServerInfoOpts)) (madmin.InfoMessage, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(madmin.InfoMessage), args.Error(1)
}

func (m *MockMinioClient) DataUsageInfo(ctx context.Context) (madmin.DataUsageInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(madmin.DataUsageInfo), args.Error(1)
}

func (m *MockMinioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioClient) ListObjectsPaginated(ctx context.Context, bucketName string, opts ListObjectsOptions) (ListObjectsResult, error) {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).(ListObjectsResult), args.Error(1)
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
