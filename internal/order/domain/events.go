package domain

import (
	"time"

	"github.com/ecommerce-app/storefront/pkg/money"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderCompleted = "OrderCompleted"
)

type OrderCreated struct {
	OrderID  string      `json:"orderId"`
	UserID   string      `json:"userId"`
	Subtotal money.Money `json:"subtotal"`
	Total    money.Money `json:"total"`
	Items    []LineItem  `json:"items"`
}

type OrderCompleted struct {
	OrderID     string    `json:"orderId"`
	CompletedAt time.Time `json:"completedAt"`
}
