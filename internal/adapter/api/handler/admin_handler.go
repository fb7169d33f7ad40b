package handler

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.adminUseCase.DashboardStats(c.Request().Context(), middleware.CurrentIdentity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}
