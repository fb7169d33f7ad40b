package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
)

// memStore backs every fake repository so a checkout sees the same carts and
// orders as the cart and order fakes.
type memStore struct {
	mu sync.Mutex

	games    map[string]*entity.Game
	profiles map[string]*entity.UserProfile
	carts    map[string]map[string]*entity.CartItem
	orders   map[string]map[string]*entity.Order
	keys     map[string]map[string]string
	payment  map[string]interface{}
	messages []*entity.ContactMessage

	writes      int
	profileGets int
	nextID      int

	// failures are returned, in order, by ConvertCart before anything is
	// applied.
	failures   []error
	profileErr error
}

func newMemStore() *memStore {
	return &memStore{
		games:    make(map[string]*entity.Game),
		profiles: make(map[string]*entity.UserProfile),
		carts:    make(map[string]map[string]*entity.CartItem),
		orders:   make(map[string]map[string]*entity.Order),
		keys:     make(map[string]map[string]string),
	}
}

func (s *memStore) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) putCart(uid string, items ...*entity.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carts[uid] == nil {
		s.carts[uid] = make(map[string]*entity.CartItem)
	}
	for _, item := range items {
		cp := *item
		s.carts[uid][item.ID] = &cp
	}
}

func (s *memStore) cartLen(uid string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts[uid])
}

func (s *memStore) orderCount(uid string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders[uid])
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func copyOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp
}

func (s *memStore) cartItemsLocked(uid string) []*entity.CartItem {
	items := make([]*entity.CartItem, 0, len(s.carts[uid]))
	for _, item := range s.carts[uid] {
		cp := *item
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

type fakeGameRepo struct{ s *memStore }

func (r fakeGameRepo) Create(_ context.Context, game *entity.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if game.ID == "" {
		game.ID = r.s.newID("game")
	}
	cp := *game
	r.s.games[game.ID] = &cp
	r.s.writes++
	return nil
}

func (r fakeGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.games[id]
	if !ok {
		return nil, errors.NotFound("Game", nil)
	}
	cp := *g
	return &cp, nil
}

func (r fakeGameRepo) GetBySlug(_ context.Context, slug string) (*entity.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Game", nil)
}

func (r fakeGameRepo) List(_ context.Context, filter repository.GameFilter, limit, offset int) ([]*entity.Game, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Game
	for _, g := range r.s.games {
		if filter.Tag != "" {
			found := false
			for _, t := range g.Tags {
				found = found || t == filter.Tag
			}
			if !found {
				continue
			}
		}
		cp := *g
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r fakeGameRepo) Update(_ context.Context, game *entity.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *game
	r.s.games[game.ID] = &cp
	r.s.writes++
	return nil
}

func (r fakeGameRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.games, id)
	r.s.writes++
	return nil
}

type fakeCartRepo struct{ s *memStore }

func (r fakeCartRepo) List(_ context.Context, uid string) ([]*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.cartItemsLocked(uid), nil
}

func (r fakeCartRepo) Get(_ context.Context, uid, itemID string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.carts[uid][itemID]
	if !ok {
		return nil, errors.NotFound("Cart item", nil)
	}
	cp := *item
	return &cp, nil
}

func (r fakeCartRepo) Put(_ context.Context, uid string, item *entity.CartItem) error {
	r.s.putCart(uid, item)
	r.s.mu.Lock()
	r.s.writes++
	r.s.mu.Unlock()
	return nil
}

func (r fakeCartRepo) Delete(_ context.Context, uid, itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.carts[uid], itemID)
	r.s.writes++
	return nil
}

type fakeCheckoutRepo struct{ s *memStore }

func (r fakeCheckoutRepo) ConvertCart(_ context.Context, uid, checkoutKey string, build repository.OrderBuilder) (*entity.Order, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.failures) > 0 {
		err := r.s.failures[0]
		r.s.failures = r.s.failures[1:]
		return nil, false, err
	}

	if orderID, ok := r.s.keys[uid][checkoutKey]; ok && checkoutKey != "" {
		return copyOrder(r.s.orders[uid][orderID]), true, nil
	}

	order, err := build(r.s.cartItemsLocked(uid))
	if err != nil {
		return nil, false, err
	}

	order.ID = r.s.newID("order")
	order.UserID = uid
	if r.s.orders[uid] == nil {
		r.s.orders[uid] = make(map[string]*entity.Order)
	}
	r.s.orders[uid][order.ID] = copyOrder(order)
	if order.CheckoutKey != "" {
		if r.s.keys[uid] == nil {
			r.s.keys[uid] = make(map[string]string)
		}
		r.s.keys[uid][order.CheckoutKey] = order.ID
	}
	delete(r.s.carts, uid)
	r.s.writes++
	return order, false, nil
}

type fakeOrderRepo struct {
	s       *memStore
	updates chan []*entity.Order
}

func (r fakeOrderRepo) GetByID(_ context.Context, uid, orderID string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[uid][orderID]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return copyOrder(o), nil
}

func (r fakeOrderRepo) ListByUser(_ context.Context, uid string) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders[uid] {
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r fakeOrderRepo) ListAll(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Order, 0)
	for _, byUser := range r.s.orders {
		for _, o := range byUser {
			if filter.Status == "" || o.Status == filter.Status {
				out = append(out, copyOrder(o))
			}
		}
	}
	return out, nil
}

func (r fakeOrderRepo) TransitionStatus(_ context.Context, uid, orderID string, next entity.OrderStatus) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[uid][orderID]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	if err := o.TransitionTo(next); err != nil {
		return nil, errors.Conflict("invalid transition", err)
	}
	r.s.writes++
	return copyOrder(o), nil
}

func (r fakeOrderRepo) WatchByUser(ctx context.Context, uid string, fn func(orders []*entity.Order)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case orders := <-r.updates:
			fn(orders)
		}
	}
}

func (r fakeOrderRepo) NormalizeLegacyStatuses(context.Context) (int, error) {
	return 0, nil
}

type fakeProfileRepo struct{ s *memStore }

func (r fakeProfileRepo) GetByUID(_ context.Context, uid string) (*entity.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.profileGets++
	if r.s.profileErr != nil {
		return nil, r.s.profileErr
	}
	p, ok := r.s.profiles[uid]
	if !ok {
		return nil, errors.NotFound("User profile", nil)
	}
	cp := *p
	return &cp, nil
}

func (r fakeProfileRepo) CreateIfAbsent(_ context.Context, profile *entity.UserProfile) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[profile.UID]; ok {
		return false, nil
	}
	cp := *profile
	r.s.profiles[profile.UID] = &cp
	r.s.writes++
	return true, nil
}

func (r fakeProfileRepo) MergeProfile(_ context.Context, uid string, update entity.ProfileUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[uid]
	if !ok {
		p = &entity.UserProfile{UID: uid}
		r.s.profiles[uid] = p
	}
	if update.DisplayName != nil {
		p.DisplayName = *update.DisplayName
	}
	if update.Username != nil {
		p.Username = *update.Username
	}
	if update.PhoneNumber != nil {
		p.PhoneNumber = *update.PhoneNumber
	}
	r.s.writes++
	return nil
}

func (r fakeProfileRepo) SetAdmin(_ context.Context, uid string, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[uid]
	if !ok {
		return errors.NotFound("User profile", nil)
	}
	p.IsAdmin = isAdmin
	r.s.writes++
	return nil
}

// fakePaymentRepo stores the raw document so replace semantics are visible.
type fakePaymentRepo struct {
	s   *memStore
	err error
}

func (r fakePaymentRepo) Get(context.Context) (*entity.PaymentConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.payment == nil {
		return &entity.PaymentConfig{}, nil
	}
	url, _ := r.s.payment["qrCodeUrl"].(string)
	return &entity.PaymentConfig{QRCodeURL: url}, nil
}

func (r fakePaymentRepo) Replace(_ context.Context, cfg *entity.PaymentConfig) error {
	if r.err != nil {
		return r.err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payment = map[string]interface{}{"qrCodeUrl": cfg.QRCodeURL}
	r.s.writes++
	return nil
}

type fakeContactRepo struct{ s *memStore }

func (r fakeContactRepo) Create(_ context.Context, msg *entity.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg.ID = r.s.newID("msg")
	cp := *msg
	r.s.messages = append(r.s.messages, &cp)
	r.s.writes++
	return nil
}

func (r fakeContactRepo) List(_ context.Context, limit int) ([]*entity.ContactMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]*entity.ContactMessage(nil), r.s.messages...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeContactRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.messages)), nil
}

type fakeNotifier struct {
	placed    chan *entity.Order
	completed chan *entity.Order
	contacts  chan *entity.ContactMessage
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		placed:    make(chan *entity.Order, 4),
		completed: make(chan *entity.Order, 4),
		contacts:  make(chan *entity.ContactMessage, 4),
	}
}

func (n *fakeNotifier) OrderPlaced(_ context.Context, o *entity.Order) error {
	n.placed <- o
	return nil
}

func (n *fakeNotifier) OrderCompleted(_ context.Context, o *entity.Order) error {
	n.completed <- o
	return nil
}

func (n *fakeNotifier) ContactReceived(_ context.Context, m *entity.ContactMessage) error {
	n.contacts <- m
	return nil
}

type fakeIdentityProvider struct {
	mu    sync.Mutex
	names map[string]string
}

func (f *fakeIdentityProvider) UpdateDisplayName(_ context.Context, uid, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.names == nil {
		f.names = make(map[string]string)
	}
	f.names[uid] = name
	return nil
}
