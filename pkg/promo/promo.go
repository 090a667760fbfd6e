package promo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/keyring"
	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

const (
	modalEntry = "promo_modal_dismissed"
	spinEntry  = "promo_spin"
)

// SpinResult is the outcome of one wheel spin.
type SpinResult struct {
	Percent  int             `json:"percent"`
	Discount decimal.Decimal `json:"discount"` // Percent as a fraction
	Code     string          `json:"code,omitempty"`
	SpunAt   time.Time       `json:"spunAt"`
}

// Won reports whether the spin landed on a discount.
func (r SpinResult) Won() bool { return r.Percent > 0 }

// Apply returns amount reduced by the won discount, never below zero.
func (r SpinResult) Apply(amount decimal.Decimal) decimal.Decimal {
	if !r.Won() {
		return amount
	}
	out := amount.Sub(amount.Mul(r.Discount)).Round(2)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// State is the promotional state of one device.
type State struct {
	ModalDismissed bool        `json:"modalDismissed"`
	Spin           *SpinResult `json:"spin,omitempty"`
}

// Service tracks per-device promotional state in an encrypted vault.
type Service struct {
	backend kvstore.Backend
	cfg     Config
	pick    func(n int) int
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Service)

func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithPicker replaces the random wheel slot selection.
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func New(backend kvstore.Backend, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		cfg:     DefaultConfig(),
		pick:    rand.IntN,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("promo"))
	return s
}

func (s *Service) vault(keys keyring.Keyring) *kvstore.Vault {
	return kvstore.NewVault(s.backend, keys, kvstore.WithVaultClock(s.now))
}

// DismissModal records that the promo modal was closed on this device.
func (s *Service) DismissModal(ctx context.Context, keys keyring.Keyring) error {
	if err := s.vault(keys).Put(ctx, modalEntry, true, s.cfg.ModalWindow); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

// ModalDismissed reports whether the modal was dismissed within the window.
// Storage errors read as not dismissed.
func (s *Service) ModalDismissed(ctx context.Context, keys keyring.Keyring) bool {
	var dismissed bool
	_, err := s.vault(keys).Fetch(ctx, modalEntry, &dismissed, s.cfg.ModalWindow)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		s.log.WarnContext(ctx, "promo state unavailable", logger.Error(err))
	}
	return err == nil && dismissed
}

// SaveSpin stores a spin result for this device.
func (s *Service) SaveSpin(ctx context.Context, keys keyring.Keyring, r SpinResult) error {
	if r.SpunAt.IsZero() {
		r.SpunAt = s.now()
	}
	if err := s.vault(keys).Put(ctx, spinEntry, r, s.cfg.SpinValidity); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

// Spin returns the stored spin result if it is still valid.
func (s *Service) Spin(ctx context.Context, keys keyring.Keyring) (SpinResult, bool) {
	var r SpinResult
	_, err := s.vault(keys).Fetch(ctx, spinEntry, &r, s.cfg.SpinValidity)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.log.WarnContext(ctx, "promo state unavailable", logger.Error(err))
		}
		return SpinResult{}, false
	}
	return r, true
}

// SpinWheel spins once per device per validity period. A repeated call
// returns the earlier result with fresh set to false.
func (s *Service) SpinWheel(ctx context.Context, keys keyring.Keyring) (r SpinResult, fresh bool, err error) {
	if !keys.HasClientContext() {
		return SpinResult{}, false, ErrNoClientKey
	}
	if prev, ok := s.Spin(ctx, keys); ok {
		return prev, false, nil
	}
	if len(s.cfg.SpinPrizes) == 0 {
		return SpinResult{}, false, ErrNoPrizes
	}

	pct := s.cfg.SpinPrizes[s.pick(len(s.cfg.SpinPrizes))]
	r = SpinResult{
		Percent:  pct,
		Discount: decimal.NewFromInt(int64(pct)).Div(decimal.NewFromInt(100)),
		SpunAt:   s.now(),
	}
	if r.Won() {
		r.Code = fmt.Sprintf("SPIN%d", pct)
	}

	if err := s.SaveSpin(ctx, keys, r); err != nil {
		return SpinResult{}, false, err
	}
	s.log.InfoContext(ctx, "wheel spun", slog.Int("percent", pct))
	return r, true, nil
}

// State collects the promotional state of the device.
func (s *Service) State(ctx context.Context, keys keyring.Keyring) State {
	st := State{ModalDismissed: s.ModalDismissed(ctx, keys)}
	if r, ok := s.Spin(ctx, keys); ok {
		st.Spin = &r
	}
	return st
}
