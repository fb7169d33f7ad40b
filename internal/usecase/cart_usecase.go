package usecase

import (
	"context"
	"time"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
)

const maxLineQuantity = 99

type CartUseCase struct {
	cartRepo repository.CartRepository
	gameRepo repository.GameRepository
	now      func() time.Time
}

func NewCartUseCase(cartRepo repository.CartRepository, gameRepo repository.GameRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		gameRepo: gameRepo,
		now:      time.Now,
	}
}

type CartView struct {
	Items       []*entity.CartItem `json:"items"`
	Total       float64            `json:"total"`
	ItemCount   int                `json:"item_count"`
	SnapshotKey string             `json:"snapshot_key"`
}

func newCartView(items []*entity.CartItem) *CartView {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return &CartView{
		Items:       items,
		Total:       entity.CartTotal(items).InexactFloat64(),
		ItemCount:   count,
		SnapshotKey: entity.CartSnapshotKey(items),
	}
}

func (uc *CartUseCase) GetCart(ctx context.Context, uid string) (*CartView, error) {
	items, err := uc.cartRepo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return newCartView(items), nil
}

// AddItem snapshots the game's current title, price and image into the cart.
// Adding a game already in the cart raises its quantity.
func (uc *CartUseCase) AddItem(ctx context.Context, uid, gameID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 || quantity > maxLineQuantity {
		return nil, errors.BadRequest("Quantity must be between 1 and 99", nil)
	}

	game, err := uc.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	item, err := uc.cartRepo.Get(ctx, uid, game.ID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if item.Quantity > maxLineQuantity {
			return nil, errors.BadRequest("Quantity must be between 1 and 99", nil)
		}
	case errors.Is(err, errors.CodeNotFound):
		item = &entity.CartItem{
			ID:       game.ID,
			GameID:   game.ID,
			Title:    game.Title,
			Price:    game.Price,
			ImageURL: game.ImageURL,
			Quantity: quantity,
			AddedAt:  uc.now().UnixMilli(),
		}
	default:
		return nil, err
	}

	if err := uc.cartRepo.Put(ctx, uid, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *CartUseCase) UpdateQuantity(ctx context.Context, uid, itemID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 || quantity > maxLineQuantity {
		return nil, errors.BadRequest("Quantity must be between 1 and 99", nil)
	}

	item, err := uc.cartRepo.Get(ctx, uid, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity

	if err := uc.cartRepo.Put(ctx, uid, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, uid, itemID string) error {
	if _, err := uc.cartRepo.Get(ctx, uid, itemID); err != nil {
		return err
	}
	return uc.cartRepo.Delete(ctx, uid, itemID)
}
