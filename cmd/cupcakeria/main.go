// Command cupcakeria wires the storefront core together: file storage,
// catalog, cart store and order archive all live here, constructed once
// and passed down explicitly. It runs a short demo session against the
// local data directory.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nikolayk812/cupcakeria/internal/cart"
	"github.com/nikolayk812/cupcakeria/internal/catalog"
	"github.com/nikolayk812/cupcakeria/internal/checkout"
	"github.com/nikolayk812/cupcakeria/internal/port"
	"go.uber.org/zap"

	filestorage "github.com/nikolayk812/cupcakeria/internal/storage"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zap.NewDevelopment: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	dataDir := getEnv("CUPCAKERIA_DATA_DIR", "./data")

	st, err := filestorage.NewFile(dataDir)
	if err != nil {
		logger.Fatal("storage init failed", zap.String("dir", dataDir), zap.Error(err))
	}
	logger.Info("using local storage", zap.String("dir", dataDir))

	cat, err := loadCatalog()
	if err != nil {
		logger.Fatal("catalog load failed", zap.Error(err))
	}

	ctx := context.Background()

	cartStore, err := cart.NewStore(ctx, st, logger)
	if err != nil {
		logger.Fatal("cart store init failed", zap.Error(err))
	}

	archive, err := checkout.NewArchive(ctx, st, logger)
	if err != nil {
		logger.Fatal("order archive init failed", zap.Error(err))
	}

	if err := run(ctx, cat, cartStore, archive); err != nil {
		logger.Fatal("demo session failed", zap.Error(err))
	}
}

func run(ctx context.Context, cat port.CatalogProvider, cartStore port.CartStore, archive port.OrderArchive) error {
	fmt.Println("== catalog ==")
	for _, p := range cat.Products() {
		fmt.Printf("  [%s] %-25s %s (%s)\n", p.ID, p.Name, p.Price, p.Category)
	}

	products := cat.Products()
	if len(products) > 0 {
		cartStore.AddItem(ctx, products[0])
	}

	state := cartStore.Cart()
	fmt.Println("== cart ==")
	for _, line := range state.Lines {
		fmt.Printf("  %dx %-25s %s\n", line.Quantity, line.Name, line.Price.Mul(line.Quantity))
	}
	fmt.Printf("  subtotal: %s\n", state.Subtotal)

	orders, err := archive.Orders(ctx)
	if err != nil {
		return fmt.Errorf("archive.Orders: %w", err)
	}

	fmt.Println("== orders ==")
	for _, order := range orders {
		fmt.Printf("  #%s %s %s (%d lines, %s)\n",
			order.ID, order.CreatedAt.Format("2006-01-02 15:04"), order.Status, len(order.Lines), order.Total)
	}

	return nil
}

func loadCatalog() (*catalog.Catalog, error) {
	path := os.Getenv("CUPCAKERIA_CATALOG")
	if path == "" {
		return catalog.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer func() { _ = f.Close() }()

	cat, err := catalog.Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}

	return cat, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
