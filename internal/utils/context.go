// Package utils provides shared utility functions and constants
package utils

import "github.com/labstack/echo/v4"

// ContextKeyRequestID is the key used to store the request id in the echo context
const ContextKeyRequestID = "request_id"

// RequestID returns the id assigned to the current request, or the id echoed
// back in the response header when the context value is missing.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyRequestID).(string); ok && id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
