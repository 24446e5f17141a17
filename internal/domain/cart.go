package domain

import "github.com/shopspring/decimal"

// CartLine is one product entry in the cart together with its quantity.
// A cart holds at most one line per product ID, and a stored quantity is
// always at least 1: transitions that would leave a line at zero or below
// remove it instead.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart is the cart state: ordered lines plus the subtotal derived from
// them. Subtotal is never mutated independently, every transition
// recomputes it from the resulting lines in the same step.
type Cart struct {
	Lines    []CartLine
	Subtotal Money
}

// CartAction is a command applied to a Cart via Apply.
type CartAction interface {
	isCartAction()
}

// AddItem appends a line with quantity 1, or increments the existing line
// for the same product by 1.
type AddItem struct {
	Product Product
}

// RemoveItem deletes the line with the given product ID. No-op if absent.
type RemoveItem struct {
	ProductID string
}

// SetQuantity replaces a line's quantity. Zero or negative removes the
// line. No-op if the product is not in the cart.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// ClearCart empties the cart.
type ClearCart struct{}

// RestoreCart replaces the lines wholesale, e.g. from persisted state.
type RestoreCart struct {
	Lines []CartLine
}

func (AddItem) isCartAction()     {}
func (RemoveItem) isCartAction()  {}
func (SetQuantity) isCartAction() {}
func (ClearCart) isCartAction()   {}
func (RestoreCart) isCartAction() {}

// Apply is the single pure transition function over cart state. The
// receiver is not mutated; the returned cart shares no line storage with
// it. Unknown product IDs make mutations no-ops, never errors.
func (c Cart) Apply(action CartAction) Cart {
	switch a := action.(type) {
	case AddItem:
		lines := CloneLines(c.Lines)
		for i := range lines {
			if lines[i].ID == a.Product.ID {
				lines[i].Quantity++
				return newCart(lines)
			}
		}
		lines = append(lines, CartLine{Product: a.Product, Quantity: 1})
		return newCart(lines)

	case RemoveItem:
		return newCart(deleteLine(c.Lines, a.ProductID))

	case SetQuantity:
		if a.Quantity <= 0 {
			return newCart(deleteLine(c.Lines, a.ProductID))
		}
		lines := CloneLines(c.Lines)
		for i := range lines {
			if lines[i].ID == a.ProductID {
				lines[i].Quantity = a.Quantity
			}
		}
		return newCart(lines)

	case ClearCart:
		return newCart(nil)

	case RestoreCart:
		return newCart(CloneLines(a.Lines))

	default:
		return c
	}
}

// Clone returns a copy sharing no line storage with the receiver.
func (c Cart) Clone() Cart {
	return newCart(CloneLines(c.Lines))
}

func newCart(lines []CartLine) Cart {
	return Cart{
		Lines:    lines,
		Subtotal: linesSubtotal(lines),
	}
}

func linesSubtotal(lines []CartLine) Money {
	total := NewMoney(decimal.Zero, DefaultCurrency)
	if len(lines) > 0 {
		total.Currency = lines[0].Price.Currency
	}

	for _, line := range lines {
		total = total.Add(line.Price.Mul(line.Quantity))
	}

	return total
}

// CloneLines copies a line slice, so snapshots stay isolated from later
// cart mutations.
func CloneLines(lines []CartLine) []CartLine {
	if len(lines) == 0 {
		return nil
	}

	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}

func deleteLine(lines []CartLine, productID string) []CartLine {
	var out []CartLine
	for _, line := range lines {
		if line.ID != productID {
			out = append(out, line)
		}
	}
	return out
}
