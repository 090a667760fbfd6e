package cart

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Store owns the in-memory cart of one client and keeps it in sync with the
// persisted snapshot. Every mutation regroups items, recomputes totals and
// re-persists.
//
// Persistence failures never fail a mutation: they are logged and the
// in-memory state still changes.
type Store struct {
	mu sync.RWMutex

	persister Persister
	notifier  Notifier
	log       *slog.Logger

	items        []Item
	total        decimal.Decimal
	evPointTotal decimal.Decimal

	authenticated bool
	authKnown     bool
}

func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		persister:    persister,
		notifier:     nopNotifier{},
		log:          slog.Default(),
		total:        decimal.Zero,
		evPointTotal: decimal.Zero,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the persisted cart. A snapshot that cannot be decrypted or
// parsed is deleted and the cart stays empty. Each item's loyalty discount is
// re-derived for the given authentication state, which also becomes the
// baseline for SetAuthenticated.
func (s *Store) Load(ctx context.Context, authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = authenticated
	s.authKnown = true
	s.items = nil

	snap, ok, err := s.persister.Load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "discarding unreadable cart",
			logger.Component("cart"),
			logger.Error(err),
		)
		s.persister.Delete(ctx)
	}
	if ok {
		s.items = slices.Clone(snap.Items)
	}

	for i := range s.items {
		s.items[i].EVPoint = s.items[i].evPointFor(authenticated)
	}
	s.derive()
}

// AddToCart merges qty units of the product into the cart.
func (s *Store) AddToCart(ctx context.Context, p Product, qty int) error {
	if err := validateQty(qty); err != nil {
		return err
	}
	data, err := normalize(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Qty = addQty(s.items[i].Qty, qty)
		s.items[i].EVPoint = s.items[i].evPointFor(s.authenticated)
	} else {
		s.items = append(s.items, newItem(p, data, qty, s.authenticated))
	}
	s.derive()
	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Notify(ctx, Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("%s added to cart", data.Name)})
	return nil
}

// RemoveItemByID drops the item. The name is only used for the notice.
// It reports whether the item was present.
func (s *Store) RemoveItemByID(ctx context.Context, id ProductID, name string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	if name == "" {
		name = s.items[i].Name
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.derive()
	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Notify(ctx, Notice{Kind: NoticeInfo, Message: fmt.Sprintf("%s removed from cart", name)})
	return true
}

// IncreaseQty adds one unit, stopping at MaxQty. Absent ids are ignored.
func (s *Store) IncreaseQty(ctx context.Context, id ProductID) bool {
	return s.adjust(ctx, id, 1)
}

// DecreaseQty removes one unit, dropping the item once its quantity reaches
// zero. Absent ids are ignored.
func (s *Store) DecreaseQty(ctx context.Context, id ProductID) bool {
	return s.adjust(ctx, id, -1)
}

func (s *Store) adjust(ctx context.Context, id ProductID, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items[i].Qty = min(s.items[i].Qty+delta, MaxQty)
	s.derive()
	s.persist(ctx)
	return true
}

// Clear empties the cart and deletes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.derive()
	s.persister.Delete(ctx)
}

// SetAuthenticated applies an authentication state change. The first call
// only records the state; later flips recompute every loyalty discount from
// the retained product data and re-persist.
func (s *Store) SetAuthenticated(ctx context.Context, authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authKnown {
		s.authenticated = authenticated
		s.authKnown = true
		return
	}
	if s.authenticated == authenticated {
		return
	}

	s.authenticated = authenticated
	for i := range s.items {
		s.items[i].EVPoint = s.items[i].evPointFor(authenticated)
	}
	s.derive()
	s.persist(ctx)
}

// Authenticated returns the authentication state the cart last observed.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Items returns a copy of the cart lines.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Item returns the line for id.
func (s *Store) Item(id ProductID) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

// Len returns the number of distinct products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Count returns the number of units across all lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Qty
	}
	return n
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *Store) EVPointTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evPointTotal
}

// TotalDiscount returns the regular (non-loyalty) discount across the cart.
func (s *Store) TotalDiscount() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CalculateTotalDiscount(s.items)
}

// GrandTotal is total minus the loyalty discount, never below zero.
func (s *Store) GrandTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := s.total.Sub(s.evPointTotal)
	if g.IsNegative() {
		return decimal.Zero
	}
	return g
}

// Snapshot returns the persisted shape of the current cart.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) snapshot() Snapshot {
	items := slices.Clone(s.items)
	if items == nil {
		items = []Item{}
	}
	return Snapshot{Items: items, Total: s.total, EVPointTotal: s.evPointTotal}
}

// derive must be called with the lock held.
func (s *Store) derive() {
	s.items = regroup(s.items)
	s.total, s.evPointTotal = totals(s.items, s.authenticated)
}

func (s *Store) persist(ctx context.Context) {
	if err := s.persister.Save(ctx, s.snapshot()); err != nil {
		s.log.ErrorContext(ctx, "cart not persisted",
			logger.Component("cart"),
			logger.Error(err),
		)
	}
}

func (s *Store) indexOf(id ProductID) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}
