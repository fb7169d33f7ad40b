package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/infrastructure/ratelimit"
)

// Limiters groups the per-endpoint rate limiters.
type Limiters struct {
	Checkout *ratelimit.KeyedLimiter
	Contact  *ratelimit.KeyedLimiter
}

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiters Limiters) {
	SetupHealthRouter(e)
	SetupGameRouter(e, authMiddleware, adminMiddleware)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupCartRouter(e, authMiddleware, limiters.Checkout)
	SetupOrderRouter(e, authMiddleware, adminMiddleware)
	SetupContactRouter(e, authMiddleware, adminMiddleware, limiters.Contact)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupTaskRouter(e, authMiddleware)
	SetupOrderStreamRouter(e)
}
