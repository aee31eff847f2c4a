package services

import (
	"context"
	"fmt"

	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/damacus/iron-gallery/internal/logger"
	"github.com/damacus/iron-gallery/internal/models"
	"github.com/damacus/iron-gallery/internal/storage"
)

// ReasonObjectStore marks a deletion that failed in the object store.
const ReasonObjectStore = "object-store"

// DeleteError is a failed deletion. Nothing after the failing step ran.
type DeleteError struct {
	Reason string
	Err    error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// DeletionCoordinator removes folders across the object store and the
// metadata store. The two are not transactional: objects go first, and a
// metadata failure after that only produces a warning.
type DeletionCoordinator struct {
	objects  ObjectGateway
	metadata storage.FolderMetadataStore
	root     string
}

func NewDeletionCoordinator(objects ObjectGateway, metadata storage.FolderMetadataStore, root string) *DeletionCoordinator {
	return &DeletionCoordinator{objects: objects, metadata: metadata, root: root}
}

// DeleteFolder removes every object under fullPath and then the description
// row for its last segment. fullPath includes the root segment.
func (d *DeletionCoordinator) DeleteFolder(ctx context.Context, fullPath string) (models.DeleteResult, error) {
	fullPath, err := gallery.ValidateDeletePath(d.root, fullPath)
	if err != nil {
		return models.DeleteResult{}, err
	}
	log := logger.FromContext(ctx).With().Str("folder", fullPath).Logger()

	removed, err := d.objects.DeleteByPrefix(ctx, fullPath+"/")
	if err != nil {
		log.With().Int("removed", removed).Err(err).Logger().Error("folder deletion failed in object store")
		return models.DeleteResult{}, &DeleteError{Reason: ReasonObjectStore, Err: err}
	}

	result := models.DeleteResult{Success: true, Removed: removed}

	// Runs even when nothing was removed, so retrying a delete whose metadata
	// step failed clears the leftover row.
	name := gallery.BaseName(fullPath)
	if err := d.metadata.DeleteByName(ctx, name); err != nil {
		log.WarnWith("folder metadata left behind", err, map[string]any{"folder_name": name})
		result.Warnings = append(result.Warnings, fmt.Sprintf("description for %q was not removed", name))
	}

	log.With().Int("removed", removed).Logger().Info("folder deleted")
	return result, nil
}

// DeleteImage removes a single object by id.
func (d *DeletionCoordinator) DeleteImage(ctx context.Context, id string) error {
	if err := gallery.ValidateObjectKey(d.root, id); err != nil {
		return err
	}
	if err := d.objects.DeleteObject(ctx, id); err != nil {
		return &DeleteError{Reason: ReasonObjectStore, Err: err}
	}
	logger.FromContext(ctx).With().Str("key", id).Logger().Info("image deleted")
	return nil
}
