package router

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/handler"
	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/infrastructure/ratelimit"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, checkoutLimiter *ratelimit.KeyedLimiter) {
	cartHandler := handler.GetCartHandler()
	checkoutHandler := handler.GetCheckoutHandler()

	cart := e.Group("/v1/cart")
	cart.Use(authMiddleware.Authenticate)

	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:id", cartHandler.UpdateItem)
	cart.DELETE("/items/:id", cartHandler.RemoveItem)

	checkout := e.Group("/v1/checkout")
	checkout.Use(authMiddleware.Authenticate)

	checkout.GET("", checkoutHandler.Preview)
	checkout.POST("", checkoutHandler.PlaceOrder, middleware.RateLimit(checkoutLimiter, "checkout"))
}
