package domain

import (
	"time"

	"github.com/ecommerce-app/storefront/pkg/money"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	// StatusCancelled is part of the status vocabulary but no transition
	// targets it here; it is reachable only through administrative action.
	StatusCancelled Status = "CANCELLED"
)

type LineItemType string

const (
	TypeProduct  LineItemType = "PRODUCT"
	TypeDiscount LineItemType = "DISCOUNT"
	TypeDelivery LineItemType = "DELIVERY"
)

// LineItem is one priced entry of an order. Price is the unit price;
// quantity is carried separately and never pre-multiplied in.
type LineItem struct {
	ID          string       `json:"id"`
	ReferenceID string       `json:"referenceId"`
	Type        LineItemType `json:"type"`
	Price       money.Money  `json:"price"`
	Quantity    int          `json:"quantity"`
}

// Cart is the priced content of an order: line items plus the tax rate
// in effect at checkout and the derived subtotal and total.
type Cart struct {
	Tax      decimal.Decimal `json:"tax"`
	Items    []LineItem      `json:"items"`
	Subtotal money.Money     `json:"subtotal"`
	Total    money.Money     `json:"total"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DemoUser is the single placeholder user orders default to when the
// checkout request names nobody.
func DemoUser() User {
	return User{ID: "00000000-0000-0000-0000-000000000001", Name: "User 1"}
}

// Order is created atomically at checkout. Status is the only field
// mutated afterwards.
type Order struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Cart      Cart      `json:"cart"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckoutItem is one requested entry of a checkout: a product id and
// an optional quantity defaulting to 1.
type CheckoutItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity,omitempty"`
}
