package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StaticTokenAuth returns a middleware that requires a fixed bearer token.
// When the configured token is empty, auth is disabled and all requests
// pass through (local single-user use).
func StaticTokenAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			provided, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"type":   "https://moneta.app/errors/unauthorized",
					"title":  "Unauthorized",
					"status": http.StatusUnauthorized,
					"detail": "A valid bearer token is required",
				})
			}

			return next(c)
		}
	}
}
