package services

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damacus/iron-gallery/internal/errs"
)

func newCoordinator() (*DeletionCoordinator, *MockMinioClient, *MockMetadataStore) {
	client := new(MockMinioClient)
	meta := new(MockMetadataStore)
	return NewDeletionCoordinator(newTestStore(client), meta, "gallery"), client, meta
}

func prefixListing(client *MockMinioClient, prefix string, objs ...minio.ObjectInfo) {
	client.On("ListObjectsPaginated", mock.Anything, testBucket, mock.MatchedBy(func(o ListObjectsOptions) bool {
		return o.Prefix == prefix
	})).Return(ListObjectsResult{Objects: objs}, nil)
}

func TestDeleteFolder_RemovesObjectsThenMetadata(t *testing.T) {
	d, client, meta := newCoordinator()
	prefixListing(client, "gallery/Picnic/", info("gallery/Picnic/a.jpg", 0), info("gallery/Picnic/b.jpg", 0))
	client.On("RemoveObject", mock.Anything, testBucket, mock.Anything, mock.Anything).Return(nil)
	meta.On("DeleteByName", mock.Anything, "Picnic").Return(nil)

	res, err := d.DeleteFolder(context.Background(), "gallery/Picnic")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Removed)
	assert.Empty(t, res.Warnings)
	client.AssertExpectations(t)
	meta.AssertExpectations(t)
}

func TestDeleteFolder_EmptyFolderStillClearsMetadata(t *testing.T) {
	d, client, meta := newCoordinator()
	prefixListing(client, "gallery/Picnic/")
	meta.On("DeleteByName", mock.Anything, "Picnic").Return(nil)

	res, err := d.DeleteFolder(context.Background(), "gallery/Picnic")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.Removed)
	client.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	meta.AssertExpectations(t)
}

func TestDeleteFolder_PrefixDoesNotMatchSibling(t *testing.T) {
	d, client, meta := newCoordinator()
	prefixListing(client, "gallery/Pic/", info("gallery/Pic/a.jpg", 0))
	client.On("RemoveObject", mock.Anything, testBucket, "gallery/Pic/a.jpg", mock.Anything).Return(nil)
	meta.On("DeleteByName", mock.Anything, "Pic").Return(nil)

	_, err := d.DeleteFolder(context.Background(), "gallery/Pic")

	require.NoError(t, err)
	client.AssertCalled(t, "ListObjectsPaginated", mock.Anything, testBucket, mock.MatchedBy(func(o ListObjectsOptions) bool {
		return o.Prefix == "gallery/Pic/"
	}))
}

func TestDeleteFolder_ObjectStoreFailureLeavesMetadata(t *testing.T) {
	d, client, meta := newCoordinator()
	prefixListing(client, "gallery/Picnic/", info("gallery/Picnic/a.jpg", 0))
	client.On("RemoveObject", mock.Anything, testBucket, "gallery/Picnic/a.jpg", mock.Anything).
		Return(errors.New("connection reset"))

	res, err := d.DeleteFolder(context.Background(), "gallery/Picnic")

	require.Error(t, err)
	assert.False(t, res.Success)
	var delErr *DeleteError
	require.ErrorAs(t, err, &delErr)
	assert.Equal(t, ReasonObjectStore, delErr.Reason)
	meta.AssertNotCalled(t, "DeleteByName", mock.Anything, mock.Anything)
}

func TestDeleteFolder_MetadataFailureIsWarning(t *testing.T) {
	d, client, meta := newCoordinator()
	prefixListing(client, "gallery/Picnic/", info("gallery/Picnic/a.jpg", 0))
	client.On("RemoveObject", mock.Anything, testBucket, mock.Anything, mock.Anything).Return(nil)
	meta.On("DeleteByName", mock.Anything, "Picnic").Return(errs.New(errs.ErrKindConnectionFailed, "db down"))

	res, err := d.DeleteFolder(context.Background(), "gallery/Picnic/")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Removed)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Picnic")
}

func TestDeleteFolder_NestedUsesLastSegment(t *testing.T) {
	d, client, meta := newCoordinator()
	prefixListing(client, "gallery/Picnic/Day1/")
	meta.On("DeleteByName", mock.Anything, "Day1").Return(nil)

	res, err := d.DeleteFolder(context.Background(), "gallery/Picnic/Day1")

	require.NoError(t, err)
	assert.Equal(t, 0, res.Removed)
	meta.AssertExpectations(t)
}

func TestDeleteFolder_PreconditionsCheckedFirst(t *testing.T) {
	for _, path := range []string{"", "gallery", "gallery/", "other/Picnic", "gallery/../x", "gallery//Picnic"} {
		t.Run(path, func(t *testing.T) {
			d, client, meta := newCoordinator()

			_, err := d.DeleteFolder(context.Background(), path)

			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
			client.AssertNotCalled(t, "ListObjectsPaginated", mock.Anything, mock.Anything, mock.Anything)
			meta.AssertNotCalled(t, "DeleteByName", mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteImage(t *testing.T) {
	d, client, _ := newCoordinator()
	client.On("RemoveObject", mock.Anything, testBucket, "gallery/Picnic/a.jpg", mock.Anything).Return(nil)

	require.NoError(t, d.DeleteImage(context.Background(), "gallery/Picnic/a.jpg"))

	err := d.DeleteImage(context.Background(), "private/a.jpg")
	assert.True(t, errs.IsInvalidInput(err))
	client.AssertNumberOfCalls(t, "RemoveObject", 1)
}

func TestDeleteImage_ObjectStoreFailure(t *testing.T) {
	d, client, _ := newCoordinator()
	client.On("RemoveObject", mock.Anything, testBucket, mock.Anything, mock.Anything).Return(errors.New("boom"))

	err := d.DeleteImage(context.Background(), "gallery/Picnic/a.jpg")

	var delErr *DeleteError
	require.ErrorAs(t, err, &delErr)
	assert.Equal(t, ReasonObjectStore, delErr.Reason)
}
