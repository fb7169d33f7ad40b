package middleware

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/usecase"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
	"gamerverse/pkg/response"
)

type AdminMiddleware struct {
	roles *usecase.RoleUseCase
}

func NewAdminMiddleware(roles *usecase.RoleUseCase) *AdminMiddleware {
	return &AdminMiddleware{
		roles: roles,
	}
}

// AdminOnly must run after Authenticate. A role that cannot be resolved is
// treated as no access.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := CurrentIdentity(c)
		if id == nil {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		role, err := m.roles.Resolve(c.Request().Context(), id)
		if err != nil {
			logger.Error("Failed to verify admin privileges for %s: %v", id.UID, err)
			return response.Error(c, err)
		}
		if !role.GrantsAdmin() {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}
