package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/handler"
	"gamerverse/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/orders", orderHandler.ListAllOrders)
	admin.POST("/orders/migrate-status", orderHandler.MigrateStatuses)
	admin.POST("/users/:uid/orders/:id/complete", orderHandler.CompleteOrder)
}
