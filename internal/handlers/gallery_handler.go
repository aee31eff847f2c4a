package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/models"
	"github.com/damacus/iron-gallery/internal/services"
	"github.com/damacus/iron-gallery/internal/utils"
)

type GalleryHandler struct {
	gallery *services.GalleryService
	deleter *services.DeletionCoordinator
}

func NewGalleryHandler(gallery *services.GalleryService, deleter *services.DeletionCoordinator) *GalleryHandler {
	return &GalleryHandler{gallery: gallery, deleter: deleter}
}

type listRequest struct {
	Folder string `query:"folder"`
	Page   int    `query:"page" validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=0,lte=1000"`
}

type recentRequest struct {
	Limit int `query:"limit" validate:"gte=0"`
}

type folderMetadataRequest struct {
	FolderName  string  `json:"folderName" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// deleteFailure carries the request id so a failed deletion can be matched
// with the server log.
type deleteFailure struct {
	Success   bool   `json:"success"`
	Reason    string `json:"reason"`
	RequestID string `json:"requestId,omitempty"`
}

// ListFolder returns one level of the gallery
func (h *GalleryHandler) ListFolder(c echo.Context) error {
	var req listRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	listing, err := h.gallery.ListFolder(c.Request().Context(), services.ListQuery{
		Folder: req.Folder,
		Page:   req.Page,
		Limit:  req.Limit,
	})
	if err != nil {
		return HTTPError(c, err, "Failed to list gallery")
	}
	return c.JSON(http.StatusOK, listing)
}

// Recent returns the most recently updated top-level folders
func (h *GalleryHandler) Recent(c echo.Context) error {
	var req recentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	folders, err := h.gallery.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		return HTTPError(c, err, "Failed to load recent folders")
	}
	return c.JSON(http.StatusOK, map[string][]models.FolderNode{"folders": folders})
}

// DeleteFolder removes a folder by its root-inclusive path
func (h *GalleryHandler) DeleteFolder(c echo.Context) error {
	fullPath, err := pathParam(c, "*")
	if err != nil {
		return err
	}

	result, err := h.deleter.DeleteFolder(c.Request().Context(), fullPath)
	if err != nil {
		return h.deleteError(c, err, "Failed to delete folder")
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteImage removes a single object by id
func (h *GalleryHandler) DeleteImage(c echo.Context) error {
	key, err := pathParam(c, "*")
	if err != nil {
		return err
	}

	if err := h.deleter.DeleteImage(c.Request().Context(), key); err != nil {
		return h.deleteError(c, err, "Failed to delete image")
	}
	return c.JSON(http.StatusOK, models.DeleteResult{Success: true, Removed: 1})
}

func (h *GalleryHandler) deleteError(c echo.Context, err error, msg string) error {
	var delErr *services.DeleteError
	if errors.As(err, &delErr) {
		// Logged by the coordinator
		return c.JSON(http.StatusInternalServerError, deleteFailure{
			Success:   false,
			Reason:    delErr.Reason,
			RequestID: utils.RequestID(c),
		})
	}
	return HTTPError(c, err, msg)
}

// SaveFolderMetadata creates or replaces a folder description
func (h *GalleryHandler) SaveFolderMetadata(c echo.Context) error {
	var req folderMetadataRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	saved, err := h.gallery.SaveFolderMetadata(c.Request().Context(), req.FolderName, req.Description)
	if err != nil {
		return HTTPError(c, err, "Failed to save folder metadata")
	}
	return c.JSON(http.StatusOK, saved)
}

// ListFolderMetadata returns every stored description
func (h *GalleryHandler) ListFolderMetadata(c echo.Context) error {
	rows, err := h.gallery.ListFolderMetadata(c.Request().Context())
	if err != nil {
		return HTTPError(c, err, "Failed to list folder metadata")
	}
	return c.JSON(http.StatusOK, rows)
}

// DeleteFolderMetadata removes the description row for a bare folder name
func (h *GalleryHandler) DeleteFolderMetadata(c echo.Context) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}

	if err := h.gallery.DeleteFolderMetadata(c.Request().Context(), name); err != nil {
		return HTTPError(c, err, "Failed to delete folder metadata")
	}
	return c.NoContent(http.StatusNoContent)
}

// pathParam returns a decoded path parameter. Echo matches on URL.RawPath
// when the request carries escapes such as %2F, and then hands back the
// escaped value; otherwise the value comes from the already decoded URL.Path
// and must not be decoded again.
func pathParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid path encoding").SetInternal(errs.Invalid("%v", err))
	}
	return decoded, nil
}
