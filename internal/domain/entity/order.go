package entity

import (
	"fmt"
	"time"
)

type OrderItem struct {
	GameID   string  `json:"game_id" firestore:"gameId"`
	Title    string  `json:"title" firestore:"title"`
	Price    float64 `json:"price" firestore:"price"`
	Quantity int     `json:"quantity" firestore:"quantity"`
}

// Order lives at users/{uid}/orders/{id}. Items and TotalAmount are frozen at
// creation; only Status changes afterwards.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	UserEmail   string      `json:"user_email"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   int64       `json:"created_at"`
	CheckoutKey string      `json:"checkout_key,omitempty"`
}

// NewOrderFromCart snapshots the cart into a pending order.
func NewOrderFromCart(userID, email string, items []*CartItem, checkoutKey string, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]OrderItem, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("cart item %s: %w", item.ID, err)
		}
		orderItems = append(orderItems, OrderItem{
			GameID:   item.GameID,
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return &Order{
		UserID:      userID,
		UserEmail:   email,
		Items:       orderItems,
		TotalAmount: CartTotal(items).InexactFloat64(),
		Status:      OrderStatusPending,
		CreatedAt:   now.UnixMilli(),
		CheckoutKey: checkoutKey,
	}, nil
}

func (o *Order) CreatedTime() time.Time {
	return time.UnixMilli(o.CreatedAt)
}

// TransitionTo moves the order to next. Only the status changes.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		if o.Status.IsTerminal() {
			return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, o.Status)
		}
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
