package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/damacus/iron-gallery/internal/services"
)

type HealthHandler struct {
	health *services.HealthService
}

func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Storage reports object-store usage and metadata-store reachability
func (h *HealthHandler) Storage(c echo.Context) error {
	status, err := h.health.StorageStatus(c.Request().Context())
	if err != nil {
		return HTTPError(c, err, "Object store unavailable")
	}
	return c.JSON(http.StatusOK, status)
}
