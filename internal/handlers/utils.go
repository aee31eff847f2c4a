package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/logger"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// BindAndValidate binds the request into dst and runs struct validation.
func BindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

// StatusFor maps a service error to an HTTP status. Backend transport
// failures are reported as a bad gateway.
func StatusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	case errs.ErrKindConnectionFailed, errs.ErrKindTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HTTPError converts a service error into an echo.HTTPError and logs server
// side failures with the request logger.
func HTTPError(c echo.Context, err error, msg string) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	status := StatusFor(err)
	if status == http.StatusBadRequest {
		return echo.NewHTTPError(status, err.Error()).SetInternal(err)
	}
	logger.FromContext(c.Request().Context()).ErrorWith(msg, err, map[string]any{
		"kind":   errs.KindOf(err).String(),
		"status": status,
	})
	return echo.NewHTTPError(status, msg).SetInternal(err)
}
