package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/response"
)

// IdempotencyKeyHeader carries the cart snapshot key shown by the checkout
// page. Resending the same key returns the order already placed.
const IdempotencyKeyHeader = "Idempotency-Key"

type CheckoutHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

func (h *CheckoutHandler) Preview(c echo.Context) error {
	preview, err := h.checkoutUseCase.Preview(c.Request().Context(), middleware.CurrentIdentity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, preview)
}

func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	key := strings.TrimSpace(c.Request().Header.Get(IdempotencyKeyHeader))

	result, err := h.checkoutUseCase.PlaceOrder(c.Request().Context(), middleware.CurrentIdentity(c), key)
	if err != nil {
		return response.Error(c, err)
	}

	if result.Replayed {
		return response.Success(c, result)
	}
	return response.Created(c, result)
}
