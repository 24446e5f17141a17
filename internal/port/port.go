package port

import (
	"context"

	"github.com/nikolayk812/cupcakeria/internal/domain"
)

// Storage is a durable key-value store scoped to one client. It survives
// process restarts; there is no server copy and no cross-device sync.
type Storage interface {
	Save(ctx context.Context, key string, value []byte) error

	// Load returns the stored bytes and whether the key was present.
	Load(ctx context.Context, key string) ([]byte, bool, error)
}

// CartStore maintains cart state under the subtotal invariant and
// persists every change. Mutations on unknown product IDs are no-ops,
// never errors.
type CartStore interface {
	AddItem(ctx context.Context, product domain.Product)
	RemoveItem(ctx context.Context, productID string)
	SetQuantity(ctx context.Context, productID string, quantity int)
	Clear(ctx context.Context)
	Restore(ctx context.Context, lines []domain.CartLine)

	Cart() domain.Cart
}

// OrderArchive turns checkout submissions into durable orders and lists
// them newest-first with display statuses derived at read time.
type OrderArchive interface {
	Submit(ctx context.Context, cart CartStore, customer domain.CustomerDetails) (domain.Order, error)
	Orders(ctx context.Context) ([]domain.Order, error)
}

// CatalogProvider supplies the immutable product list.
type CatalogProvider interface {
	Products() []domain.Product
	Product(id string) (domain.Product, bool)
}
