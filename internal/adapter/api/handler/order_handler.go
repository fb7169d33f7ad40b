package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUseCase.ListOrders(c.Request().Context(), middleware.CurrentUID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderUseCase.GetOrder(c.Request().Context(), middleware.CurrentUID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

// ListAllOrders serves the admin order table, optionally filtered by status.
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	status, err := usecase.ParseStatusFilter(c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	orders, err := h.orderUseCase.ListAllOrders(c.Request().Context(), middleware.CurrentIdentity(c), status, limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, orders)
}

func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	order, err := h.orderUseCase.CompleteOrder(
		c.Request().Context(),
		middleware.CurrentIdentity(c),
		c.Param("uid"),
		c.Param("id"),
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) MigrateStatuses(c echo.Context) error {
	n, err := h.orderUseCase.MigrateLegacyStatuses(c.Request().Context(), middleware.CurrentIdentity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"updated": n})
}
