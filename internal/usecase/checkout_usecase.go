package usecase

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/internal/infrastructure/task"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
)

const checkoutMaxRetries = 3

type CheckoutUseCase struct {
	checkoutRepo repository.CheckoutRepository
	cartRepo     repository.CartRepository
	paymentRepo  repository.PaymentConfigRepository
	notifier     Notifier
	runner       *task.Runner

	newBackOff func() backoff.BackOff
	now        func() time.Time
}

func NewCheckoutUseCase(
	checkoutRepo repository.CheckoutRepository,
	cartRepo repository.CartRepository,
	paymentRepo repository.PaymentConfigRepository,
	notifier Notifier,
	runner *task.Runner,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		checkoutRepo: checkoutRepo,
		cartRepo:     cartRepo,
		paymentRepo:  paymentRepo,
		notifier:     notifierOrNop(notifier),
		runner:       runner,
		newBackOff:   defaultCheckoutBackOff,
		now:          time.Now,
	}
}

func defaultCheckoutBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second
	return backoff.WithMaxRetries(b, checkoutMaxRetries)
}

// WithBackOff swaps the retry policy. Tests use a zero delay policy.
func (uc *CheckoutUseCase) WithBackOff(fn func() backoff.BackOff) *CheckoutUseCase {
	uc.newBackOff = fn
	return uc
}

type CheckoutPreview struct {
	Cart          *CartView             `json:"cart"`
	PaymentConfig *entity.PaymentConfig `json:"payment_config"`
}

// Preview is what the checkout page renders: the cart, its total, the key to
// send back when placing the order and the payment QR to scan.
func (uc *CheckoutUseCase) Preview(ctx context.Context, id *entity.Identity) (*CheckoutPreview, error) {
	if id == nil {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	items, err := uc.cartRepo.List(ctx, id.UID)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.paymentRepo.Get(ctx)
	if err != nil {
		logger.Warn("Payment config unavailable for checkout preview: %v", err)
		cfg = &entity.PaymentConfig{}
	}

	return &CheckoutPreview{
		Cart:          newCartView(items),
		PaymentConfig: cfg,
	}, nil
}

type PlaceOrderResult struct {
	Order    *entity.Order `json:"order"`
	Replayed bool          `json:"replayed"`
}

// PlaceOrder converts the caller's cart into a pending order and empties the
// cart in one transaction. checkoutKey is the cart snapshot key from Preview;
// repeating a call with the same key returns the same order. Without a key
// every call places a new order.
func (uc *CheckoutUseCase) PlaceOrder(ctx context.Context, id *entity.Identity, checkoutKey string) (*PlaceOrderResult, error) {
	if id == nil || id.UID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	build := func(items []*entity.CartItem) (*entity.Order, error) {
		if len(items) == 0 {
			return nil, errors.BadRequest("Your cart is empty", entity.ErrEmptyCart)
		}
		if checkoutKey != "" && entity.CartSnapshotKey(items) != checkoutKey {
			return nil, errors.Conflict("Your cart changed, please review it and try again", entity.ErrCartChanged)
		}
		order, err := entity.NewOrderFromCart(id.UID, id.Email, items, checkoutKey, uc.now())
		if err != nil {
			return nil, errors.BadRequest("Cart contains an invalid item", err)
		}
		return order, nil
	}

	var result PlaceOrderResult
	attempt := 0
	op := func() error {
		attempt++
		order, replayed, err := uc.checkoutRepo.ConvertCart(ctx, id.UID, checkoutKey, build)
		if err != nil {
			if errors.IsTransient(err) {
				logger.Warn("Checkout attempt %d for %s failed, retrying: %v", attempt, id.UID, err)
				return err
			}
			return backoff.Permanent(err)
		}
		result = PlaceOrderResult{Order: order, Replayed: replayed}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(uc.newBackOff(), ctx)); err != nil {
		logger.LogOrderError("", "checkout", err)
		return nil, err
	}

	if result.Replayed {
		logger.Info("Checkout for %s replayed existing order %s", id.UID, result.Order.ID)
		return &result, nil
	}

	logger.Info("Order %s placed by %s: %d items, total %.2f", result.Order.ID, id.UID, len(result.Order.Items), result.Order.TotalAmount)
	order := result.Order
	dispatch(uc.runner, "mail.order_placed", id.UID, func(ctx context.Context) error {
		return uc.notifier.OrderPlaced(ctx, order)
	})

	return &result, nil
}
