package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/cupcakeria/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestApply(t *testing.T) {
	chocolate := productWithPrice("1", "8.50")
	redVelvet := productWithPrice("3", "10.00")

	tests := []struct {
		name      string
		initial   []domain.CartLine
		action    domain.CartAction
		wantLines []domain.CartLine
	}{
		{
			name:      "add to empty cart: new line with quantity 1",
			action:    domain.AddItem{Product: chocolate},
			wantLines: []domain.CartLine{{Product: chocolate, Quantity: 1}},
		},
		{
			name:      "add existing product: increments quantity",
			initial:   []domain.CartLine{{Product: chocolate, Quantity: 2}},
			action:    domain.AddItem{Product: chocolate},
			wantLines: []domain.CartLine{{Product: chocolate, Quantity: 3}},
		},
		{
			name: "add second product: appends line",
			initial: []domain.CartLine{
				{Product: chocolate, Quantity: 1},
			},
			action: domain.AddItem{Product: redVelvet},
			wantLines: []domain.CartLine{
				{Product: chocolate, Quantity: 1},
				{Product: redVelvet, Quantity: 1},
			},
		},
		{
			name: "remove existing product: deletes line",
			initial: []domain.CartLine{
				{Product: chocolate, Quantity: 1},
				{Product: redVelvet, Quantity: 2},
			},
			action:    domain.RemoveItem{ProductID: chocolate.ID},
			wantLines: []domain.CartLine{{Product: redVelvet, Quantity: 2}},
		},
		{
			name:      "remove absent product: no-op",
			initial:   []domain.CartLine{{Product: chocolate, Quantity: 1}},
			action:    domain.RemoveItem{ProductID: "missing"},
			wantLines: []domain.CartLine{{Product: chocolate, Quantity: 1}},
		},
		{
			name:      "set quantity: replaces, not increments",
			initial:   []domain.CartLine{{Product: chocolate, Quantity: 1}},
			action:    domain.SetQuantity{ProductID: chocolate.ID, Quantity: 5},
			wantLines: []domain.CartLine{{Product: chocolate, Quantity: 5}},
		},
		{
			name:      "set quantity to zero: removes line",
			initial:   []domain.CartLine{{Product: chocolate, Quantity: 3}},
			action:    domain.SetQuantity{ProductID: chocolate.ID, Quantity: 0},
			wantLines: nil,
		},
		{
			name:      "set negative quantity: removes line",
			initial:   []domain.CartLine{{Product: chocolate, Quantity: 3}},
			action:    domain.SetQuantity{ProductID: chocolate.ID, Quantity: -1},
			wantLines: nil,
		},
		{
			name:      "set quantity on absent product: no-op",
			initial:   []domain.CartLine{{Product: chocolate, Quantity: 1}},
			action:    domain.SetQuantity{ProductID: "missing", Quantity: 7},
			wantLines: []domain.CartLine{{Product: chocolate, Quantity: 1}},
		},
		{
			name: "clear: empties cart",
			initial: []domain.CartLine{
				{Product: chocolate, Quantity: 1},
				{Product: redVelvet, Quantity: 2},
			},
			action:    domain.ClearCart{},
			wantLines: nil,
		},
		{
			name:    "restore: replaces lines wholesale",
			initial: []domain.CartLine{{Product: chocolate, Quantity: 9}},
			action: domain.RestoreCart{Lines: []domain.CartLine{
				{Product: redVelvet, Quantity: 1},
			}},
			wantLines: []domain.CartLine{{Product: redVelvet, Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			initial := domain.Cart{}.Apply(domain.RestoreCart{Lines: tt.initial})

			got := initial.Apply(tt.action)

			assertLines(t, tt.wantLines, got.Lines)
			assertSubtotalInvariant(t, got)

			// the receiver must be left untouched
			assertLines(t, tt.initial, initial.Lines)
		})
	}
}

func TestApplySubtotalExample(t *testing.T) {
	// A: 8.50 x 2, B: 10.00 x 1 => 27.00
	a := productWithPrice("a", "8.50")
	b := productWithPrice("b", "10.00")

	cart := domain.Cart{}.
		Apply(domain.AddItem{Product: a}).
		Apply(domain.AddItem{Product: b}).
		Apply(domain.AddItem{Product: a})

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.True(t, cart.Subtotal.Equal(money("27.00")), "subtotal %s", cart.Subtotal)
}

func TestApplyRandomSequenceKeepsInvariant(t *testing.T) {
	products := make([]domain.Product, 5)
	for i := range products {
		products[i] = randomProduct()
	}

	cart := domain.Cart{}
	for i := 0; i < 200; i++ {
		p := products[gofakeit.Number(0, len(products)-1)]

		var action domain.CartAction
		switch gofakeit.Number(0, 3) {
		case 0, 1: // bias towards adding so the cart is rarely empty
			action = domain.AddItem{Product: p}
		case 2:
			action = domain.RemoveItem{ProductID: p.ID}
		default:
			action = domain.SetQuantity{ProductID: p.ID, Quantity: gofakeit.Number(-1, 10)}
		}

		cart = cart.Apply(action)
		assertSubtotalInvariant(t, cart)
		assertSingleLinePerProduct(t, cart)
	}
}

func TestEmptyCartSubtotal(t *testing.T) {
	cart := domain.Cart{}.Apply(domain.ClearCart{})

	assert.True(t, cart.Subtotal.Amount.IsZero())
	assert.Equal(t, domain.DefaultCurrency.String(), cart.Subtotal.Currency.String())
}

func productWithPrice(id, price string) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      "cupcake-" + id,
		Price:     money(price),
		Category:  domain.CategoryStandard,
		Available: true,
	}
}

func money(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.BRL)
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(6),
		Price:       domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 50)), currency.BRL),
		Image:       "/" + gofakeit.Word() + ".png",
		Category:    domain.CategoryStandard,
		Available:   gofakeit.Bool(),
	}
}

func assertLines(t *testing.T, expected, actual []domain.CartLine) {
	t.Helper()

	if len(expected) == 0 {
		expected = nil
	}
	if len(actual) == 0 {
		actual = nil
	}

	moneyComparer := cmp.Comparer(func(x, y domain.Money) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, moneyComparer)
	assert.Empty(t, diff)
}

func assertSubtotalInvariant(t *testing.T, cart domain.Cart) {
	t.Helper()

	want := decimal.Zero
	for _, line := range cart.Lines {
		require.GreaterOrEqual(t, line.Quantity, 1, "stored quantity below 1")
		want = want.Add(line.Price.Amount.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	assert.True(t, cart.Subtotal.Amount.Equal(want),
		"subtotal %s, lines sum to %s", cart.Subtotal.Amount, want)
}

func assertSingleLinePerProduct(t *testing.T, cart domain.Cart) {
	t.Helper()

	seen := make(map[string]bool, len(cart.Lines))
	for _, line := range cart.Lines {
		require.False(t, seen[line.ID], "duplicate line for product %s", line.ID)
		seen[line.ID] = true
	}
}
