package repository

import (
	"context"

	"gamerverse/internal/domain/entity"
)

type PaymentConfigRepository interface {
	// Get returns an empty config when none has been saved.
	Get(ctx context.Context) (*entity.PaymentConfig, error)
	Replace(ctx context.Context, cfg *entity.PaymentConfig) error
}

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *entity.ContactMessage) error
	List(ctx context.Context, limit int) ([]*entity.ContactMessage, error)
	Count(ctx context.Context) (int64, error)
}
