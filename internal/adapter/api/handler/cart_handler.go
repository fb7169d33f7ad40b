package handler

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addCartItemRequest struct {
	GameID   string `json:"game_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=99"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartUseCase.GetCart(c.Request().Context(), middleware.CurrentUID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.cartUseCase.AddItem(c.Request().Context(), middleware.CurrentUID(c), req.GameID, req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, item)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.UpdateQuantity(c.Request().Context(), middleware.CurrentUID(c), c.Param("id"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.cartUseCase.RemoveItem(c.Request().Context(), middleware.CurrentUID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Item removed from cart"})
}
