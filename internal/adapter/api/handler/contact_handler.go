package handler

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/response"
	"gamerverse/pkg/utils"
)

type ContactHandler struct {
	contactUseCase *usecase.ContactUseCase
}

func NewContactHandler(contactUseCase *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=150"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	msg, err := h.contactUseCase.Submit(c.Request().Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, msg)
}

func (h *ContactHandler) ListMessages(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	msgs, err := h.contactUseCase.ListMessages(c.Request().Context(), middleware.CurrentIdentity(c), pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, msgs)
}
