package handler

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/domain/entity"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/response"
	"gamerverse/pkg/utils"
)

type SettingsHandler struct {
	settingsUseCase *usecase.SettingsUseCase
}

func NewSettingsHandler(settingsUseCase *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
	}
}

type paymentConfigRequest struct {
	QRCodeURL string `json:"qr_code_url" validate:"required,url"`
}

func (h *SettingsHandler) GetPaymentConfig(c echo.Context) error {
	cfg, err := h.settingsUseCase.GetPaymentConfig(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cfg)
}

// ReplacePaymentConfig overwrites the payment QR settings. ?async=true answers
// 202 with a task to poll instead of waiting for the write.
func (h *SettingsHandler) ReplacePaymentConfig(c echo.Context) error {
	var req paymentConfigRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	cfg := &entity.PaymentConfig{QRCodeURL: req.QRCodeURL}
	actor := middleware.CurrentIdentity(c)

	if utils.QueryBool(c, "async") {
		t, err := h.settingsUseCase.ReplacePaymentConfigAsync(c.Request().Context(), actor, cfg)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Accepted(c, t.Snapshot())
	}

	saved, err := h.settingsUseCase.ReplacePaymentConfig(c.Request().Context(), actor, cfg)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, saved)
}
