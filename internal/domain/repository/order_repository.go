package repository

import (
	"context"

	"gamerverse/internal/domain/entity"
)

type OrderFilter struct {
	Status entity.OrderStatus
	Limit  int
}

type OrderRepository interface {
	GetByID(ctx context.Context, uid, orderID string) (*entity.Order, error)
	ListByUser(ctx context.Context, uid string) ([]*entity.Order, error)
	// ListAll reads orders across every user. Admin only.
	ListAll(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// TransitionStatus atomically checks the current status and writes next.
	// Only the status field is written.
	TransitionStatus(ctx context.Context, uid, orderID string, next entity.OrderStatus) (*entity.Order, error)
	// WatchByUser calls fn with the full order list on every change until ctx
	// is cancelled.
	WatchByUser(ctx context.Context, uid string, fn func(orders []*entity.Order)) error
	// NormalizeLegacyStatuses rewrites boolean or outdated status values and
	// returns the number of documents changed.
	NormalizeLegacyStatuses(ctx context.Context) (int, error)
}

// OrderBuilder turns the cart lines read inside the checkout transaction into
// the order to persist. Returning an error aborts without writing.
type OrderBuilder func(items []*entity.CartItem) (*entity.Order, error)

type CheckoutRepository interface {
	// ConvertCart atomically creates the order built from the cart, records
	// checkoutKey and empties the cart. When checkoutKey was already used the
	// existing order is returned with replayed=true and nothing is written.
	ConvertCart(ctx context.Context, uid, checkoutKey string, build OrderBuilder) (order *entity.Order, replayed bool, err error)
}
