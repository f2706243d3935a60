package domain

import "time"

type Order struct {
	ID            string
	UserID        string
	Status        string
	Currency      string
	PaymentMethod string
	TotalAmount   int64
	Items         []OrderItem
	CreatedAt     time.Time
}

// OrderItem is a frozen copy of a cart line at checkout time. UnitAmount is
// the price paid, never re-read from the catalog afterwards.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int32
	UnitAmount int64
}

type CreateOrderRequest struct {
	UserID        string
	Currency      string
	PaymentMethod string
	TotalAmount   int64
	Items         []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID  string
	Quantity   int32
	UnitAmount int64
}
