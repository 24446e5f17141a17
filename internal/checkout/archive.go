// Package checkout implements the order archive: checkout submissions
// become durable orders, listed newest-first with display statuses
// derived at read time.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cupcakeria/internal/domain"
	"github.com/nikolayk812/cupcakeria/internal/port"
	"github.com/nikolayk812/cupcakeria/internal/storage"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the order list lives under.
const DefaultKey = "cupcake-orders"

// ErrEmptyCart rejects a submission with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

type Archive struct {
	storage port.Storage
	logger  *zap.Logger
	key     string
	now     func() time.Time
	newID   func(time.Time) string

	mu     sync.Mutex
	orders []domain.Order // newest first
}

type Option func(*Archive)

// WithKey overrides the storage key, e.g. to isolate tests.
func WithKey(key string) Option {
	return func(a *Archive) { a.key = key }
}

// WithClock overrides the wall clock, used by status derivation tests.
func WithClock(now func() time.Time) Option {
	return func(a *Archive) { a.now = now }
}

// WithIDGenerator overrides order id generation.
func WithIDGenerator(newID func(time.Time) string) Option {
	return func(a *Archive) { a.newID = newID }
}

// NewArchive restores the persisted order list, if any. Absent or
// malformed stored orders start an empty archive; that is never an
// error.
func NewArchive(ctx context.Context, st port.Storage, logger *zap.Logger, opts ...Option) (*Archive, error) {
	if st == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Archive{
		storage: st,
		logger:  logger,
		key:     DefaultKey,
		now:     time.Now,
		newID:   orderID,
	}

	for _, opt := range opts {
		opt(a)
	}

	orders, found := storage.LoadJSON[[]domain.Order](ctx, st, logger, a.key)
	a.orders = orders
	if found {
		logger.Debug("order archive restored", zap.Int("orders", len(orders)))
	}

	return a, nil
}

// Submit snapshots the cart and the customer details into a new order,
// prepends it to the archive, persists the list and then clears the
// cart. The cart is left untouched if persisting fails. Customer
// validation is the caller's job and happens before this point.
func (a *Archive) Submit(ctx context.Context, cart port.CartStore, customer domain.CustomerDetails) (domain.Order, error) {
	if cart == nil {
		return domain.Order{}, fmt.Errorf("cart is nil")
	}

	state := cart.Cart()
	if len(state.Lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	now := a.now()
	order := domain.Order{
		ID:        a.newID(now),
		CreatedAt: now,
		Lines:     domain.CloneLines(state.Lines),
		Total:     state.Subtotal.Add(domain.DeliveryFee()),
		Customer:  customer,
		Status:    domain.StatusPreparing,
	}

	a.mu.Lock()
	orders := make([]domain.Order, 0, len(a.orders)+1)
	orders = append(orders, order)
	orders = append(orders, a.orders...)

	if err := storage.SaveJSON(ctx, a.storage, a.key, orders); err != nil {
		a.mu.Unlock()
		return domain.Order{}, fmt.Errorf("storage.SaveJSON: %w", err)
	}

	a.orders = orders
	a.mu.Unlock()

	cart.Clear(ctx)

	a.logger.Info("order submitted",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Lines)),
		zap.String("total", order.Total.String()))

	return order, nil
}

// Orders lists the archive newest-first. Each order carries the display
// status derived from its age and its position in this listing; the
// stored status is not changed.
func (a *Archive) Orders(_ context.Context) ([]domain.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()

	out := make([]domain.Order, len(a.orders))
	for i, order := range a.orders {
		order.Lines = domain.CloneLines(order.Lines)
		order.Status = order.StatusAt(now, i)
		out[i] = order
	}

	return out, nil
}

// orderID keeps the storefront's CP-prefixed timestamp format and adds a
// random suffix so rapid submissions cannot collide.
func orderID(now time.Time) string {
	return fmt.Sprintf("CP%06d-%s", now.UnixMilli()%1_000_000, uuid.NewString()[:8])
}

var _ port.OrderArchive = (*Archive)(nil)
