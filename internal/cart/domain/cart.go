package domain

import "time"

type CartItem struct {
	ID        string
	ProductID string
	Quantity  int32
}

type Cart struct {
	ID        string
	UserID    string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}
