package usecase

import (
	"context"
	"strings"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/internal/infrastructure/task"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
)

const defaultAdminOrderLimit = 200

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	roles     *RoleUseCase
	notifier  Notifier
	runner    *task.Runner
}

func NewOrderUseCase(orderRepo repository.OrderRepository, roles *RoleUseCase, notifier Notifier, runner *task.Runner) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		roles:     roles,
		notifier:  notifierOrNop(notifier),
		runner:    runner,
	}
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, uid string) ([]*entity.Order, error) {
	return uc.orderRepo.ListByUser(ctx, uid)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, uid, orderID string) (*entity.Order, error) {
	return uc.orderRepo.GetByID(ctx, uid, orderID)
}

// ParseStatusFilter accepts "", "pending" or "completed" in any case.
func ParseStatusFilter(raw string) (entity.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	st, legacy, err := entity.ParseOrderStatus(raw)
	if err != nil || (legacy && !strings.EqualFold(raw, string(st))) {
		return "", errors.BadRequest("status must be one of: Pending, Completed", err)
	}
	return st, nil
}

func (uc *OrderUseCase) ListAllOrders(ctx context.Context, actor *entity.Identity, status entity.OrderStatus, limit int) ([]*entity.Order, error) {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, errors.BadRequest("status must be one of: Pending, Completed", nil)
	}
	if limit <= 0 || limit > defaultAdminOrderLimit {
		limit = defaultAdminOrderLimit
	}
	return uc.orderRepo.ListAll(ctx, repository.OrderFilter{Status: status, Limit: limit})
}

// CompleteOrder records that an admin verified payment for the order. Only the
// status changes; a second completion is a conflict.
func (uc *OrderUseCase) CompleteOrder(ctx context.Context, actor *entity.Identity, ownerUID, orderID string) (*entity.Order, error) {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.TransitionStatus(ctx, ownerUID, orderID, entity.OrderStatusCompleted)
	if err != nil {
		logger.LogOrderError(orderID, "complete", err)
		return nil, err
	}

	logger.Info("Order %s of %s completed by admin %s", orderID, ownerUID, actor.UID)
	dispatch(uc.runner, "mail.order_completed", actor.UID, func(ctx context.Context) error {
		return uc.notifier.OrderCompleted(ctx, order)
	})

	return order, nil
}

// WatchOrders streams the user's orders until ctx is cancelled. fn receives
// initial=true for the first snapshot only.
func (uc *OrderUseCase) WatchOrders(ctx context.Context, uid string, fn func(orders []*entity.Order, initial bool)) error {
	first := true
	return uc.orderRepo.WatchByUser(ctx, uid, func(orders []*entity.Order) {
		fn(orders, first)
		first = false
	})
}

func (uc *OrderUseCase) MigrateLegacyStatuses(ctx context.Context, actor *entity.Identity) (int, error) {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return 0, err
	}
	return uc.NormalizeStatuses(ctx)
}

// NormalizeStatuses rewrites legacy status values without an actor check. Used
// by the maintenance command.
func (uc *OrderUseCase) NormalizeStatuses(ctx context.Context) (int, error) {
	n, err := uc.orderRepo.NormalizeLegacyStatuses(ctx)
	if err != nil {
		return n, err
	}
	logger.Info("Normalized %d legacy order statuses", n)
	return n, nil
}
