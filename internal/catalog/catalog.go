// Package catalog supplies the immutable product list. Catalogs are
// authored as YAML; the default cupcake catalog ships embedded in the
// binary.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/nikolayk812/cupcakeria/internal/domain"
	"github.com/nikolayk812/cupcakeria/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	products []domain.Product
	index    map[string]int
}

type catalogFile struct {
	Currency string        `yaml:"currency"`
	Products []productSpec `yaml:"products"`
}

type productSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
	Available   bool   `yaml:"available"`
}

// Load parses a YAML catalog. Product IDs must be unique, prices
// non-negative and categories known.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("yaml.Decode: %w", err)
	}

	unit := domain.DefaultCurrency
	if file.Currency != "" {
		parsed, err := currency.ParseISO(file.Currency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", file.Currency, err)
		}
		unit = parsed
	}

	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}

	c := &Catalog{
		index: make(map[string]int, len(file.Products)),
	}

	for _, spec := range file.Products {
		product, err := spec.toDomain(unit)
		if err != nil {
			return nil, fmt.Errorf("product[%s]: %w", spec.ID, err)
		}

		if _, ok := c.index[product.ID]; ok {
			return nil, fmt.Errorf("product[%s]: duplicate id", product.ID)
		}

		c.index[product.ID] = len(c.products)
		c.products = append(c.products, product)
	}

	return c, nil
}

// Default returns the embedded cupcake catalog. The data is fixed at
// compile time, so a parse failure is a programming error.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Products returns the catalog in authored order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Product(id string) (domain.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

func (spec productSpec) toDomain(unit currency.Unit) (domain.Product, error) {
	if spec.ID == "" {
		return domain.Product{}, fmt.Errorf("id is empty")
	}
	if spec.Name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}

	amount, err := decimal.NewFromString(spec.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] is not valid: %w", spec.Price, err)
	}
	if amount.IsNegative() {
		return domain.Product{}, fmt.Errorf("price[%s] is negative", spec.Price)
	}

	category := domain.Category(spec.Category)
	if !category.Valid() {
		return domain.Product{}, fmt.Errorf("category[%s] is not valid", spec.Category)
	}

	return domain.Product{
		ID:          spec.ID,
		Name:        spec.Name,
		Description: spec.Description,
		Price:       domain.NewMoney(amount, unit),
		Image:       spec.Image,
		Category:    category,
		Available:   spec.Available,
	}, nil
}

var _ port.CatalogProvider = (*Catalog)(nil)
