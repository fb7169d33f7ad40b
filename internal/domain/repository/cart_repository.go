package repository

import (
	"context"

	"gamerverse/internal/domain/entity"
)

type CartRepository interface {
	List(ctx context.Context, uid string) ([]*entity.CartItem, error)
	Get(ctx context.Context, uid, itemID string) (*entity.CartItem, error)
	// Put writes the item under item.ID, replacing any previous line.
	Put(ctx context.Context, uid string, item *entity.CartItem) error
	Delete(ctx context.Context, uid, itemID string) error
}
