package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/secrets"
)

// DefaultCookieDays is how long a persisted cart survives without mutations.
const DefaultCookieDays = 30

// Persister stores cart snapshots. Load reports ok=false when nothing has
// been stored yet.
type Persister interface {
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
	Save(ctx context.Context, snap Snapshot) error
	Delete(ctx context.Context)
}

// CookiePersister keeps the encrypted snapshot in a single cookie.
type CookiePersister struct {
	store cookie.Store
	key   secrets.Key
	name  string
	days  int
}

// NewCookiePersister binds the persister to a cookie store, an encryption key
// and the fingerprint-derived cookie name.
func NewCookiePersister(store cookie.Store, key secrets.Key, name string) *CookiePersister {
	return &CookiePersister{store: store, key: key, name: name, days: DefaultCookieDays}
}

// WithDays overrides the cookie lifetime.
func (p *CookiePersister) WithDays(days int) *CookiePersister {
	p.days = days
	return p
}

// Name returns the cookie name.
func (p *CookiePersister) Name() string { return p.name }

func (p *CookiePersister) Load(_ context.Context) (Snapshot, bool, error) {
	raw, ok := p.store.Get(p.name)
	if !ok || raw == "" {
		return Snapshot{}, false, nil
	}

	var stored storedSnapshot
	if err := secrets.DecryptJSON(p.key, raw, &stored); err != nil {
		return Snapshot{}, false, errors.Join(ErrLoad, err)
	}
	return stored.expand(), true, nil
}

// Save writes the snapshot. A cart too large for one cookie fails with an
// error wrapping cookie.ErrValueTooLarge and the previous cookie stays.
func (p *CookiePersister) Save(_ context.Context, snap Snapshot) error {
	value, err := secrets.EncryptJSON(p.key, compact(snap))
	if err != nil {
		return errors.Join(ErrPersist, err)
	}
	if err := p.store.Set(p.name, value, p.days); err != nil {
		return errors.Join(ErrPersist, fmt.Errorf("write cookie %s: %w", p.name, err))
	}
	return nil
}

func (p *CookiePersister) Delete(_ context.Context) {
	p.store.Delete(p.name)
}

// storedSnapshot is the cookie form of a Snapshot. Product data that repeats
// the item's own fields is left out; only the loyalty discount, which the item
// zeroes for guests, is kept.
type storedSnapshot struct {
	Items        []storedItem    `json:"items"`
	Total        decimal.Decimal `json:"total"`
	EVPointTotal decimal.Decimal `json:"evPointTotal"`
}

type storedItem struct {
	Item
	ProductData storedData `json:"productData"`
}

type storedData struct {
	EVPoint decimal.Decimal `json:"evPoint"`
}

func compact(snap Snapshot) storedSnapshot {
	out := storedSnapshot{
		Items:        make([]storedItem, len(snap.Items)),
		Total:        snap.Total,
		EVPointTotal: snap.EVPointTotal,
	}
	for i, it := range snap.Items {
		out.Items[i] = storedItem{Item: it, ProductData: storedData{EVPoint: it.ProductData.EVPoint}}
	}
	return out
}

func (s storedSnapshot) expand() Snapshot {
	snap := Snapshot{
		Items:        make([]Item, len(s.Items)),
		Total:        s.Total,
		EVPointTotal: s.EVPointTotal,
	}
	for i, st := range s.Items {
		it := st.Item
		it.ProductData = ProductData{
			Name:          it.Name,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Discount:      it.Discount,
			EVPoint:       st.ProductData.EVPoint,
			Image:         it.Image,
			Category:      it.Category,
		}
		snap.Items[i] = it
	}
	return snap
}
