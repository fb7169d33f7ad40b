package handler

import (
	"context"
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/domain/entity"
	ws "gamerverse/internal/infrastructure/websocket"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/logger"
	"gamerverse/pkg/response"
)

// OrderStreamHandler pushes a user's order list over a WebSocket every time it
// changes.
type OrderStreamHandler struct {
	wsManager      *ws.Manager
	orderUseCase   *usecase.OrderUseCase
	authMiddleware *middleware.AuthMiddleware
	upgrader       gorillaws.Upgrader
}

var orderStreamHandler *OrderStreamHandler

func NewOrderStreamHandler(wsManager *ws.Manager, orderUseCase *usecase.OrderUseCase, authMiddleware *middleware.AuthMiddleware, allowedOrigins []string) *OrderStreamHandler {
	return &OrderStreamHandler{
		wsManager:      wsManager,
		orderUseCase:   orderUseCase,
		authMiddleware: authMiddleware,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func SetupOrderStreamHandler(wsManager *ws.Manager, orderUseCase *usecase.OrderUseCase, authMiddleware *middleware.AuthMiddleware, allowedOrigins []string) {
	orderStreamHandler = NewOrderStreamHandler(wsManager, orderUseCase, authMiddleware, allowedOrigins)
}

func GetOrderStreamHandler() *OrderStreamHandler {
	return orderStreamHandler
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// StreamOrders authenticates with ?token= since browsers cannot send headers on
// the handshake. The first frame is orders_loading, then one orders_snapshot
// per change with initial=true on the first.
func (h *OrderStreamHandler) StreamOrders(c echo.Context) error {
	id, err := h.authMiddleware.VerifyToken(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed for %s: %v", id.UID, err)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := ws.NewClient(id.UID, conn, cancel)
	if !h.wsManager.Register(client) {
		conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump(h.wsManager)

	client.Push(ws.Encode(ws.MessageTypeOrdersLoading, false, nil))

	go func() {
		err := h.orderUseCase.WatchOrders(ctx, id.UID, func(orders []*entity.Order, initial bool) {
			if client.Closed() {
				return
			}
			client.Push(ws.Encode(ws.MessageTypeOrdersSnapshot, initial, orders))
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("Order stream for %s failed: %v", id.UID, err)
			client.Push(ws.Encode(ws.MessageTypeError, false, "Order updates are unavailable"))
			h.wsManager.Unregister(client)
		}
	}()

	return nil
}
