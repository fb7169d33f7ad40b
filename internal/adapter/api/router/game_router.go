package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/handler"
	"gamerverse/internal/adapter/api/middleware"
)

// SetupGameRouter initializes catalog routes
func SetupGameRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	gameHandler := handler.GetGameHandler()

	e.GET("/v1/games", gameHandler.ListGames)
	e.GET("/v1/games/:slug", gameHandler.GetGameBySlug)

	admin := e.Group("/v1/admin/games")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("", gameHandler.ListGames)
	admin.GET("/options", gameHandler.FormOptions)
	admin.GET("/:id", gameHandler.GetGame)
	admin.POST("", gameHandler.CreateGame)
	admin.PUT("/:id", gameHandler.UpdateGame)
	admin.DELETE("/:id", gameHandler.DeleteGame)
}
