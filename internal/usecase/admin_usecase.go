package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
)

type DashboardStats struct {
	TotalGames      int64 `json:"total_games"`
	PendingOrders   int   `json:"pending_orders"`
	CompletedOrders int   `json:"completed_orders"`
	ContactMessages int64 `json:"contact_messages"`
}

type AdminUseCase struct {
	gameRepo    repository.GameRepository
	orderRepo   repository.OrderRepository
	contactRepo repository.ContactMessageRepository
	roles       *RoleUseCase
}

func NewAdminUseCase(gameRepo repository.GameRepository, orderRepo repository.OrderRepository, contactRepo repository.ContactMessageRepository, roles *RoleUseCase) *AdminUseCase {
	return &AdminUseCase{
		gameRepo:    gameRepo,
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
		roles:       roles,
	}
}

func (uc *AdminUseCase) DashboardStats(ctx context.Context, actor *entity.Identity) (*DashboardStats, error) {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, total, err := uc.gameRepo.List(ctx, repository.GameFilter{}, 1, 0)
		stats.TotalGames = total
		return err
	})
	g.Go(func() error {
		orders, err := uc.orderRepo.ListAll(ctx, repository.OrderFilter{})
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.Status == entity.OrderStatusCompleted {
				stats.CompletedOrders++
			} else {
				stats.PendingOrders++
			}
		}
		return nil
	})
	g.Go(func() error {
		n, err := uc.contactRepo.Count(ctx)
		stats.ContactMessages = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
