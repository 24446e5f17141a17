// Package cart implements the cart store: serialized mutations over the
// pure domain transitions, with every change persisted to local storage
// before it is visible to readers.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/cupcakeria/internal/domain"
	"github.com/nikolayk812/cupcakeria/internal/port"
	"github.com/nikolayk812/cupcakeria/internal/storage"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the cart lines live under.
const DefaultKey = "cupcake-cart"

type Store struct {
	storage port.Storage
	logger  *zap.Logger
	key     string

	mu    sync.Mutex
	state domain.Cart
}

type Option func(*Store)

// WithKey overrides the storage key, e.g. to isolate tests.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// NewStore restores the persisted cart, if any. Absent or malformed
// stored lines start an empty cart; that is never an error.
func NewStore(ctx context.Context, st port.Storage, logger *zap.Logger, opts ...Option) (*Store, error) {
	if st == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		storage: st,
		logger:  logger,
		key:     DefaultKey,
	}

	for _, opt := range opts {
		opt(s)
	}

	lines, found := storage.LoadJSON[[]domain.CartLine](ctx, st, logger, s.key)
	s.state = domain.Cart{}.Apply(domain.RestoreCart{Lines: lines})
	if found {
		logger.Debug("cart restored", zap.Int("lines", len(lines)))
	}

	return s, nil
}

// AddItem puts one unit of the product in the cart, incrementing the
// quantity if the product is already there. Availability is not checked
// here, that is a presentation concern.
func (s *Store) AddItem(ctx context.Context, product domain.Product) {
	s.dispatch(ctx, domain.AddItem{Product: product})
}

// RemoveItem deletes the product's line. No-op if absent.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.dispatch(ctx, domain.RemoveItem{ProductID: productID})
}

// SetQuantity replaces the line's quantity; zero or below removes the
// line. No-op if the product is not in the cart.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	s.dispatch(ctx, domain.SetQuantity{ProductID: productID, Quantity: quantity})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.dispatch(ctx, domain.ClearCart{})
}

// Restore replaces the lines wholesale and recomputes the subtotal.
func (s *Store) Restore(ctx context.Context, lines []domain.CartLine) {
	s.dispatch(ctx, domain.RestoreCart{Lines: lines})
}

// Cart returns a copy of the current state.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// dispatch applies one action at a time: transition, persist, commit.
// Persistence runs before the new state becomes readable; a failed save
// is logged and the session degrades to memory-only until the next save
// succeeds.
func (s *Store) dispatch(ctx context.Context, action domain.CartAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Apply(action)

	if err := storage.SaveJSON(ctx, s.storage, s.key, next.Lines); err != nil {
		s.logger.Warn("cart save failed", zap.String("key", s.key), zap.Error(err))
	}

	s.state = next
}

var _ port.CartStore = (*Store)(nil)
