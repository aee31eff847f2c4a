package services

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/damacus/iron-gallery/internal/logger"
	"github.com/damacus/iron-gallery/internal/models"
	"github.com/damacus/iron-gallery/internal/storage"
)

// HealthService reports on both backends for operators.
type HealthService struct {
	admin    MinioAdminClient
	metadata storage.FolderMetadataStore
	bucket   string
}

func NewHealthService(admin MinioAdminClient, metadata storage.FolderMetadataStore, bucket string) *HealthService {
	return &HealthService{admin: admin, metadata: metadata, bucket: bucket}
}

// StorageStatus fails when the object store cannot be queried. An
// unreachable metadata store is reported in the result instead.
func (h *HealthService) StorageStatus(ctx context.Context) (models.StorageStatus, error) {
	info, err := h.admin.ServerInfo(ctx)
	if err != nil {
		return models.StorageStatus{}, mapError(err, "server info")
	}

	usage, err := h.admin.DataUsageInfo(ctx)
	if err != nil {
		return models.StorageStatus{}, mapError(err, "data usage")
	}

	status := models.StorageStatus{
		Mode:            info.Mode,
		Bucket:          h.bucket,
		MetadataHealthy: true,
	}
	if b, ok := usage.BucketsUsage[h.bucket]; ok {
		status.Objects = b.ObjectsCount
		status.Size = b.Size
	} else if usage.BucketSizes != nil {
		status.Size = usage.BucketSizes[h.bucket]
	}
	status.FormattedSize = humanize.Bytes(status.Size)

	if err := h.metadata.Ping(ctx); err != nil {
		logger.FromContext(ctx).WarnWith("metadata store ping failed", err, nil)
		status.MetadataHealthy = false
	}
	return status, nil
}
