package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/handler"
)

// SetupOrderStreamRouter registers the order WebSocket. It authenticates from
// the token query parameter inside the handler.
func SetupOrderStreamRouter(e *echo.Echo) {
	e.GET("/v1/ws/orders", handler.GetOrderStreamHandler().StreamOrders)
}
