package usecase

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamerverse/internal/domain/entity"
	"gamerverse/pkg/errors"
)

func seedOrder(s *memStore, uid, id string, status entity.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders[uid] == nil {
		s.orders[uid] = make(map[string]*entity.Order)
	}
	s.orders[uid][id] = &entity.Order{
		ID:          id,
		UserID:      uid,
		Items:       []entity.OrderItem{{GameID: "g1", Title: "Hades", Price: 20, Quantity: 1}},
		TotalAmount: 20,
		Status:      status,
		CreatedAt:   time.Now().UnixMilli(),
	}
}

func newOrderFixture(t *testing.T) (*memStore, *fakeNotifier, *OrderUseCase, fakeOrderRepo) {
	s := newMemStore()
	n := newFakeNotifier()
	repo := fakeOrderRepo{s: s, updates: make(chan []*entity.Order, 4)}
	return s, n, NewOrderUseCase(repo, newTestRoles(s), n, newTestRunner(t)), repo
}

func TestCompleteOrderByAdmin(t *testing.T) {
	s, n, uc, repo := newOrderFixture(t)
	seedProfile(s, "admin", true)
	seedOrder(s, "u1", "o1", entity.OrderStatusPending)

	before, err := repo.GetByID(context.Background(), "u1", "o1")
	require.NoError(t, err)

	order, err := uc.CompleteOrder(context.Background(), testIdentity("admin"), "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.Equal(t, 20.0, order.TotalAmount)

	after, err := repo.GetByID(context.Background(), "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, after.Status)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.TotalAmount, after.TotalAmount)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.UserEmail, after.UserEmail)

	select {
	case done := <-n.completed:
		assert.Equal(t, "o1", done.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("order completed notification was not sent")
	}
}

func TestCompleteOrderRequiresAdmin(t *testing.T) {
	s, _, uc, _ := newOrderFixture(t)
	seedProfile(s, "u2", false)
	seedOrder(s, "u1", "o1", entity.OrderStatusPending)

	_, err := uc.CompleteOrder(context.Background(), testIdentity("u2"), "u1", "o1")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	got, err := uc.GetOrder(context.Background(), "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
}

func TestCompleteOrderTwiceConflicts(t *testing.T) {
	s, _, uc, _ := newOrderFixture(t)
	seedProfile(s, "admin", true)
	seedOrder(s, "u1", "o1", entity.OrderStatusCompleted)

	_, err := uc.CompleteOrder(context.Background(), testIdentity("admin"), "u1", "o1")
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.True(t, stderrors.Is(err, entity.ErrInvalidTransition))
}

func TestCompleteMissingOrder(t *testing.T) {
	s, _, uc, _ := newOrderFixture(t)
	seedProfile(s, "admin", true)

	_, err := uc.CompleteOrder(context.Background(), testIdentity("admin"), "u1", "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestListAllOrdersFiltersByStatus(t *testing.T) {
	s, _, uc, _ := newOrderFixture(t)
	seedProfile(s, "admin", true)
	seedOrder(s, "u1", "o1", entity.OrderStatusPending)
	seedOrder(s, "u2", "o2", entity.OrderStatusCompleted)

	all, err := uc.ListAllOrders(context.Background(), testIdentity("admin"), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := uc.ListAllOrders(context.Background(), testIdentity("admin"), entity.OrderStatusPending, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "o1", pending[0].ID)

	_, err = uc.ListAllOrders(context.Background(), testIdentity("admin"), entity.OrderStatus("Delivered"), 0)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.ListAllOrders(context.Background(), testIdentity("u1"), "", 0)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestParseStatusFilter(t *testing.T) {
	st, err := ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatus(""), st)

	st, err = ParseStatusFilter("completed")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, st)

	_, err = ParseStatusFilter("shipped")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestWatchOrdersMarksFirstSnapshotInitial(t *testing.T) {
	_, _, uc, repo := newOrderFixture(t)
	repo.updates <- []*entity.Order{}
	repo.updates <- []*entity.Order{{ID: "o1"}}

	ctx, cancel := context.WithCancel(context.Background())
	var flags []bool
	var sizes []int
	err := uc.WatchOrders(ctx, "u1", func(orders []*entity.Order, initial bool) {
		flags = append(flags, initial)
		sizes = append(sizes, len(orders))
		if len(flags) == 2 {
			cancel()
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, flags)
	assert.Equal(t, []int{0, 1}, sizes)
}

func TestMigrateLegacyStatusesRequiresAdmin(t *testing.T) {
	s, _, uc, _ := newOrderFixture(t)
	seedProfile(s, "admin", true)

	_, err := uc.MigrateLegacyStatuses(context.Background(), testIdentity("u1"))
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	n, err := uc.MigrateLegacyStatuses(context.Background(), testIdentity("admin"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCheckedOutOrderKeepsItemsThroughCompletion(t *testing.T) {
	f := newCheckoutFixture(t)
	f.store.putCart("u1", sampleCart()...)
	seedProfile(f.store, "admin", true)

	placed, err := f.uc.PlaceOrder(context.Background(), testIdentity("u1"), "")
	require.NoError(t, err)
	require.Equal(t, 139.98, placed.Order.TotalAmount)

	repo := fakeOrderRepo{s: f.store, updates: make(chan []*entity.Order)}
	orders := NewOrderUseCase(repo, newTestRoles(f.store), newFakeNotifier(), newTestRunner(t))
	before, err := orders.GetOrder(context.Background(), "u1", placed.Order.ID)
	require.NoError(t, err)

	_, err = orders.CompleteOrder(context.Background(), testIdentity("admin"), "u1", placed.Order.ID)
	require.NoError(t, err)

	after, err := orders.GetOrder(context.Background(), "u1", placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, after.Status)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, 139.98, after.TotalAmount)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, 0, f.store.cartLen("u1"))
}
