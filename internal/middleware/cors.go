package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// CORS lets the listed browser origins call the gallery API. Mutating routes
// need the Authorization header, so it is allowed explicitly.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	disabled := func(echo.Context) bool { return len(allowedOrigins) == 0 }

	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		Skipper:       disabled,
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderXRequestID},
	})
}
