package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrTotalsAreNotConstructed is returned when Totals were not created via NewTotals.
	ErrTotalsAreNotConstructed = errors.New("Totals must be created via NewTotals")

	// ErrCurrencyIsRequired is returned when the currency code is empty.
	ErrCurrencyIsRequired = errors.New("currency code is required")
)

// Totals holds the monetary breakdown of an order in integer minor-currency
// units (cents). The grand total is derived, never stored independently:
//
//	total = subtotal + tax + shipping - discount
//
// and must be non-negative.
type Totals struct {
	subtotal int64
	tax      int64
	shipping int64
	discount int64
	currency string

	guard guard.ConstructorGuard
}

// NewTotals creates validated order totals. All components must be
// non-negative and the discount may not exceed the sum of the other parts.
func NewTotals(subtotal, tax, shipping, discount int64, currency string) (Totals, error) {
	if currency == "" {
		return Totals{}, ErrCurrencyIsRequired
	}

	for name, v := range map[string]int64{
		"subtotal": subtotal,
		"tax":      tax,
		"shipping": shipping,
		"discount": discount,
	} {
		if v < 0 {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%d is negative", v))
		}
	}

	if subtotal+tax+shipping-discount < 0 {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("discount %d exceeds charges %d", discount, subtotal+tax+shipping))
	}

	return Totals{
		subtotal: subtotal,
		tax:      tax,
		shipping: shipping,
		discount: discount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Totals were created via NewTotals.
func (t Totals) Validate() error {
	return t.guard.Validate(ErrTotalsAreNotConstructed)
}

// Subtotal returns the goods subtotal in minor units.
func (t Totals) Subtotal() int64 { return t.subtotal }

// Tax returns the tax amount in minor units.
func (t Totals) Tax() int64 { return t.tax }

// Shipping returns the shipping charge in minor units.
func (t Totals) Shipping() int64 { return t.shipping }

// Discount returns the discount amount in minor units.
func (t Totals) Discount() int64 { return t.discount }

// Currency returns the currency code.
func (t Totals) Currency() string { return t.currency }

// Total returns the grand total in minor units.
func (t Totals) Total() int64 {
	return t.subtotal + t.tax + t.shipping - t.discount
}
