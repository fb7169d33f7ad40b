package handler

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/domain/entity"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/response"
	"gamerverse/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
	roleUseCase *usecase.RoleUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, roleUseCase *usecase.RoleUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		roleUseCase: roleUseCase,
	}
}

type sessionResponse struct {
	Profile *entity.UserProfile   `json:"profile"`
	Role    entity.RoleResolution `json:"role"`
	Created bool                  `json:"created"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=50"`
	Username    *string `json:"username" validate:"omitempty,max=30"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
}

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

// CreateSession is called by the client right after sign-in. It makes sure
// users/{uid} exists and returns the resolved role for the session.
func (h *UserHandler) CreateSession(c echo.Context) error {
	id := middleware.CurrentIdentity(c)

	profile, created, err := h.userUseCase.EnsureProfile(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	role, err := h.roleUseCase.Resolve(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sessionResponse{
		Profile: profile,
		Role:    role,
		Created: created,
	})
}

func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	profile, err := h.userUseCase.GetProfile(c.Request().Context(), middleware.CurrentUID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

// UpdateCurrentUser merges the editable fields. With ?async=true the write runs
// in the background and the task is returned for polling.
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := middleware.CurrentUID(c)
	input := usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
	}

	if utils.QueryBool(c, "async") {
		t, err := h.userUseCase.UpdateProfileAsync(c.Request().Context(), uid, input)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Accepted(c, t.Snapshot())
	}

	if err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, input); err != nil {
		return response.Error(c, err)
	}

	profile, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *UserHandler) SetAdmin(c echo.Context) error {
	var req setAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	targetUID := c.Param("uid")
	if targetUID == "" {
		return response.Error(c, errors.BadRequest("User id is required", nil))
	}

	if err := h.userUseCase.SetAdmin(c.Request().Context(), middleware.CurrentIdentity(c), targetUID, *req.IsAdmin); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"uid":      targetUID,
		"is_admin": *req.IsAdmin,
	})
}
