package usecase

import (
	"context"
	"fmt"
	"strings"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
)

type GameUseCase struct {
	gameRepo repository.GameRepository
}

func NewGameUseCase(gameRepo repository.GameRepository) *GameUseCase {
	return &GameUseCase{
		gameRepo: gameRepo,
	}
}

type GameInput struct {
	Slug               string
	Title              string
	Platform           string
	ShortDescription   string
	Description        string
	Price              float64
	ImageURL           string
	BannerURL          string
	Tags               []string
	Rating             *float64
	SystemRequirements *entity.SystemRequirements
}

func (in GameInput) slug() string {
	if s := entity.Slugify(in.Slug); s != "" {
		return s
	}
	return entity.Slugify(in.Title)
}

func (in GameInput) apply(game *entity.Game) {
	game.Title = strings.TrimSpace(in.Title)
	game.Platform = in.Platform
	if game.Platform == "" {
		game.Platform = entity.PlatformPC
	}
	game.ShortDescription = strings.TrimSpace(in.ShortDescription)
	game.Description = strings.TrimSpace(in.Description)
	game.Price = in.Price
	game.ImageURL = in.ImageURL
	game.BannerURL = in.BannerURL
	game.Tags = normalizeTags(in.Tags)
	game.Rating = in.Rating
	game.SystemRequirements = in.SystemRequirements
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
	}
	return out
}

// ensureSlugFree rejects a slug already used by a different game.
func (uc *GameUseCase) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	if slug == "" {
		return errors.BadRequest("Title must contain letters or digits", nil)
	}

	existing, err := uc.gameRepo.GetBySlug(ctx, slug)
	switch {
	case err == nil && existing.ID != selfID:
		return errors.Conflict(fmt.Sprintf("A game with slug %q already exists", slug), nil)
	case err != nil && !errors.Is(err, errors.CodeNotFound):
		return err
	}
	return nil
}

func (uc *GameUseCase) CreateGame(ctx context.Context, input GameInput) (*entity.Game, error) {
	slug := input.slug()
	if err := uc.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	game := &entity.Game{Slug: slug}
	input.apply(game)

	if err := uc.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (uc *GameUseCase) UpdateGame(ctx context.Context, id string, input GameInput) (*entity.Game, error) {
	game, err := uc.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := input.slug()
	if slug != game.Slug {
		if err := uc.ensureSlugFree(ctx, slug, game.ID); err != nil {
			return nil, err
		}
		game.Slug = slug
	}
	input.apply(game)

	if err := uc.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (uc *GameUseCase) DeleteGame(ctx context.Context, id string) error {
	if _, err := uc.gameRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.gameRepo.Delete(ctx, id)
}

func (uc *GameUseCase) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	return uc.gameRepo.GetByID(ctx, id)
}

func (uc *GameUseCase) GetGameBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	return uc.gameRepo.GetBySlug(ctx, strings.ToLower(slug))
}

func (uc *GameUseCase) ListGames(ctx context.Context, tag string, page, limit int) ([]*entity.Game, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.gameRepo.List(ctx, repository.GameFilter{Tag: strings.TrimSpace(tag)}, limit, offset)
}
