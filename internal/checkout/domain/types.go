package domain

import (
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/payment"
)

// Line is one submitted checkout line: the product, the quantity, and the
// unit price the client saw, in minor units.
type Line struct {
	ProductID  string
	Quantity   int32
	UnitAmount int64
}

type Request struct {
	UserID        string
	PaymentMethod string
	Lines         []Line
	TotalAmount   int64
	Currency      string
}

type Result struct {
	Order   orderdomain.Order
	Payment payment.Details

	// Warning is set when the order committed but the cart clear failed
	// afterwards. The order is authoritative; a stale cart is cosmetic.
	Warning string
}
