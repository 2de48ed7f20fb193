package domain

import (
	"github.com/ecommerce-app/storefront/internal/catalog/domain"
	"github.com/ecommerce-app/storefront/pkg/money"
	"github.com/shopspring/decimal"
)

// LineItem is one cart entry: a snapshot of the product taken at
// add-to-cart time plus the requested quantity. The embedded product
// keeps the persisted snapshot a flat array of product fields with a
// quantity, which is the wire format the storage slot expects.
type LineItem struct {
	domain.Product
	Quantity int `json:"quantity"`
}

// ExtendedPrice is the unit price multiplied by the quantity. Unlike
// the checkout-side pricing it does not reject non-positive quantities;
// the cart accepts whatever quantity the caller handed AddItem.
func (li LineItem) ExtendedPrice() money.Money {
	return money.New(
		li.Price.Amount.Mul(decimal.NewFromInt(int64(li.Quantity))),
		li.Price.Currency,
	)
}
