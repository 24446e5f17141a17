package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentPix    PaymentMethod = "pix"
	PaymentCash   PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCredit, PaymentDebit, PaymentPix, PaymentCash:
		return true
	}
	return false
}

// CustomerDetails is the checkout form payload. It is transient until a
// submission turns it into part of an Order.
type CustomerDetails struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	PostalCode    string        `json:"postalCode"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes"`
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validate reports the first missing or malformed required field.
// Notes are optional. Callers reject invalid details before submitting,
// so a validation failure never touches cart or archive state.
func (c CustomerDetails) Validate() error {
	required := []struct {
		field, value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"city", c.City},
		{"postalCode", c.PostalCode},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is empty", r.field)
		}
	}

	if !emailPattern.MatchString(c.Email) {
		return fmt.Errorf("email[%s] is not valid", c.Email)
	}

	if !c.PaymentMethod.Valid() {
		return fmt.Errorf("paymentMethod[%s] is not valid", c.PaymentMethod)
	}

	return nil
}

type Status string

const (
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
)

// Order snapshots a cart and the customer details at checkout time.
// It is immutable after creation; the stored Status is always
// StatusPreparing and the display status comes from StatusAt.
type Order struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Lines     []CartLine      `json:"lines"`
	Total     Money           `json:"total"`
	Customer  CustomerDetails `json:"customer"`
	Status    Status          `json:"status"`
}

// StatusAt derives the display status from the time elapsed since the
// order was created. Position is the order's index in the newest-first
// archive listing; it breaks the tie for recent orders, which makes the
// result depend on mutable list position. That quirk is intentional: the
// whole derivation is a stand-in for a real fulfillment pipeline.
func (o Order) StatusAt(now time.Time, position int) Status {
	elapsed := now.Sub(o.CreatedAt)

	switch {
	case elapsed >= 48*time.Hour:
		return StatusDelivered
	case elapsed >= 24*time.Hour:
		return StatusOutForDelivery
	case position%3 == 0:
		return StatusReady
	default:
		return o.Status
	}
}

// DeliveryFee is the flat fee added to the cart subtotal to produce an
// order's total.
func DeliveryFee() Money {
	return NewMoney(decimal.NewFromInt(5), DefaultCurrency)
}
