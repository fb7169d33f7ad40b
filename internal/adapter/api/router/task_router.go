package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/handler"
	"gamerverse/internal/adapter/api/middleware"
)

func SetupTaskRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	taskHandler := handler.GetTaskHandler()

	e.GET("/v1/tasks/:id", taskHandler.GetTask, authMiddleware.Authenticate)
}
