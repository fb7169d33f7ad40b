package handler

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/response"
	"gamerverse/pkg/utils"
)

type GameHandler struct {
	gameUseCase *usecase.GameUseCase
}

func NewGameHandler(gameUseCase *usecase.GameUseCase) *GameHandler {
	return &GameHandler{
		gameUseCase: gameUseCase,
	}
}

type systemRequirementsRequest struct {
	OS        string `json:"os" validate:"max=120"`
	Processor string `json:"processor" validate:"max=120"`
	Memory    string `json:"memory" validate:"max=60"`
	Graphics  string `json:"graphics" validate:"max=120"`
	Storage   string `json:"storage" validate:"max=60"`
}

type gameRequest struct {
	Slug               string                     `json:"slug" validate:"omitempty,max=120"`
	Title              string                     `json:"title" validate:"required,min=1,max=120"`
	Platform           string                     `json:"platform" validate:"omitempty,max=40"`
	ShortDescription   string                     `json:"short_description" validate:"max=300"`
	Description        string                     `json:"description" validate:"max=5000"`
	Price              float64                    `json:"price" validate:"gte=0"`
	ImageURL           string                     `json:"image_url" validate:"omitempty,url"`
	BannerURL          string                     `json:"banner_url" validate:"omitempty,url"`
	Tags               []string                   `json:"tags" validate:"max=20,dive,max=40"`
	Rating             *float64                   `json:"rating" validate:"omitempty,gte=0,lte=5"`
	SystemRequirements *systemRequirementsRequest `json:"system_requirements"`
}

func (r gameRequest) toInput() usecase.GameInput {
	in := usecase.GameInput{
		Slug:             r.Slug,
		Title:            r.Title,
		Platform:         r.Platform,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Price:            r.Price,
		ImageURL:         r.ImageURL,
		BannerURL:        r.BannerURL,
		Tags:             r.Tags,
		Rating:           r.Rating,
	}
	if r.SystemRequirements != nil {
		in.SystemRequirements = &entity.SystemRequirements{
			OS:        r.SystemRequirements.OS,
			Processor: r.SystemRequirements.Processor,
			Memory:    r.SystemRequirements.Memory,
			Graphics:  r.SystemRequirements.Graphics,
			Storage:   r.SystemRequirements.Storage,
		}
	}
	return in
}

func (h *GameHandler) bindGame(c echo.Context) (*gameRequest, error) {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *GameHandler) ListGames(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	games, total, err := h.gameUseCase.ListGames(
		c.Request().Context(),
		c.QueryParam("tag"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, games, total, pagination.Page, pagination.PageSize)
}

func (h *GameHandler) GetGameBySlug(c echo.Context) error {
	game, err := h.gameUseCase.GetGameBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, game)
}

func (h *GameHandler) GetGame(c echo.Context) error {
	game, err := h.gameUseCase.GetGameByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, game)
}

func (h *GameHandler) CreateGame(c echo.Context) error {
	req, err := h.bindGame(c)
	if err != nil {
		return response.Error(c, err)
	}

	game, err := h.gameUseCase.CreateGame(c.Request().Context(), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, game)
}

func (h *GameHandler) UpdateGame(c echo.Context) error {
	req, err := h.bindGame(c)
	if err != nil {
		return response.Error(c, err)
	}

	game, err := h.gameUseCase.UpdateGame(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, game)
}

func (h *GameHandler) DeleteGame(c echo.Context) error {
	if err := h.gameUseCase.DeleteGame(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Game deleted successfully"})
}

// FormOptions returns the preset lists the admin game form offers.
func (h *GameHandler) FormOptions(c echo.Context) error {
	return response.Success(c, map[string][]string{
		"os":        entity.OSOptions,
		"processor": entity.ProcessorOptions,
		"memory":    entity.MemoryOptions,
		"graphics":  entity.GraphicsOptions,
		"storage":   entity.StorageOptions,
	})
}
