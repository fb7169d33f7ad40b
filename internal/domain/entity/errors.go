package entity

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCartItem    = errors.New("invalid cart item")
	ErrCartChanged        = errors.New("cart changed since checkout started")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrUnknownOrderStatus = errors.New("unknown order status")
)
