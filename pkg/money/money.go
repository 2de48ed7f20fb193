// Package money provides the Money value type and the deterministic
// arithmetic the cart and checkout paths are built on. Amounts are
// decimal.Decimal (shopspring) so no binary-float drift or implicit
// rounding is introduced anywhere in the pricing path.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the catalog's single operating currency.
const DefaultCurrency = "USD"

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func New(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero returns a zero-amount Money in the given currency.
func Zero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}

// Multiply extends a unit price by a quantity. Quantity must be at
// least 1; callers normalize quantity <= 0 into a removal before
// reaching pricing.
func Multiply(unit Money, quantity int) (Money, error) {
	if quantity < 1 {
		return Money{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return Money{
		Amount:   unit.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: unit.Currency,
	}, nil
}

// Sum adds a sequence of prices that must all share one currency.
// An empty sequence sums to zero in the default currency.
func Sum(prices []Money) (Money, error) {
	if len(prices) == 0 {
		return Zero(DefaultCurrency), nil
	}
	total := Zero(prices[0].Currency)
	for _, p := range prices {
		if p.Currency != total.Currency {
			return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, total.Currency, p.Currency)
		}
		total.Amount = total.Amount.Add(p.Amount)
	}
	return total, nil
}

// ApplyTax multiplies an amount by the tax factor derived from rate.
// A rate >= 1 is already a multiplier (1.07), a rate < 1 is a fraction
// (0.07) and gets 1 added. Both forms are accepted for compatibility
// with existing pricing data.
func ApplyTax(m Money, rate decimal.Decimal) Money {
	factor := rate
	if rate.LessThan(decimal.NewFromInt(1)) {
		factor = rate.Add(decimal.NewFromInt(1))
	}
	return Money{
		Amount:   m.Amount.Mul(factor),
		Currency: m.Currency,
	}
}
