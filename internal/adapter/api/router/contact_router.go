package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/handler"
	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/infrastructure/ratelimit"
)

func SetupContactRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, contactLimiter *ratelimit.KeyedLimiter) {
	contactHandler := handler.GetContactHandler()

	// Signed-in visitors are limited per account, everyone else per IP.
	e.POST("/v1/contact", contactHandler.Submit,
		OptionalAuth(authMiddleware),
		middleware.RateLimit(contactLimiter, "contact"),
	)

	admin := e.Group("/v1/admin/messages")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("", contactHandler.ListMessages)
}
