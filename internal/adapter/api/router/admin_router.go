package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/handler"
	"gamerverse/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()
	settingsHandler := handler.GetSettingsHandler()
	uploadHandler := handler.GetUploadHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/stats", adminHandler.GetStats)

	admin.GET("/settings/payment", settingsHandler.GetPaymentConfig)
	admin.PUT("/settings/payment", settingsHandler.ReplacePaymentConfig)

	admin.POST("/uploads", uploadHandler.UploadImage)
	admin.DELETE("/uploads", uploadHandler.DeleteImage)
}
