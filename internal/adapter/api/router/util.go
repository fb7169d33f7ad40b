package router

import (
	"strings"

	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
)

// OptionalAuth sets the caller when a valid bearer token is present and lets
// anonymous or invalid requests through unchanged.
func OptionalAuth(authMiddleware *middleware.AuthMiddleware) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			parts := strings.Split(c.Request().Header.Get("Authorization"), " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return next(c)
			}

			id, err := authMiddleware.VerifyToken(c.Request().Context(), parts[1])
			if err != nil {
				return next(c)
			}

			c.Set(middleware.ContextKeyUID, id.UID)
			c.Set(middleware.ContextKeyIdentity, id)
			return next(c)
		}
	}
}
