package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderRepo interface {
	// CreateOrderTx writes the order and all of its items in one transaction;
	// a failure leaves no rows behind.
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
}
