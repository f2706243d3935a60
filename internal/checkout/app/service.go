package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/payment"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrTotalMismatch means the submitted total does not equal the sum of
	// the submitted line totals. The server recomputes instead of trusting
	// the client.
	ErrTotalMismatch = errors.New("total does not match line items")

	ErrOrderCreation = errors.New("order creation failed")
)

type OrderWriter interface {
	CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error)
}

type CartClearer interface {
	ClearForUser(ctx context.Context, userID string) error
}

// Confirmer notifies the customer after checkout. Delivery is fire and
// forget: implementations must not fail the checkout.
type Confirmer interface {
	OrderConfirmed(ctx context.Context, order orderdomain.Order)
}

type Service struct {
	orders   OrderWriter
	cart     CartClearer
	payments payment.Provider
	confirm  Confirmer
	log      *slog.Logger
}

func NewService(orders OrderWriter, cart CartClearer, payments payment.Provider, confirm Confirmer, log *slog.Logger) *Service {
	return &Service{
		orders:   orders,
		cart:     cart,
		payments: payments,
		confirm:  confirm,
		log:      log,
	}
}

// Checkout materializes the submitted lines into a persisted order, clears
// the source cart, and produces the payment confirmation. The order write is
// atomic; a cart-clear failure after the commit downgrades to a warning on an
// otherwise successful result.
func (s *Service) Checkout(ctx context.Context, req domain.Request) (domain.Result, error) {
	method, err := payment.ParseMethod(req.PaymentMethod)
	if err != nil {
		return domain.Result{}, err
	}

	if len(req.Lines) == 0 {
		return domain.Result{}, fmt.Errorf("%w: no items to check out", ErrInvalidInput)
	}

	var sum int64
	items := make([]orderdomain.OrderItemRequest, 0, len(req.Lines))
	for i, line := range req.Lines {
		if line.ProductID == "" {
			return domain.Result{}, fmt.Errorf("%w: item %d: missing product id", ErrInvalidInput, i)
		}
		if line.Quantity <= 0 {
			return domain.Result{}, fmt.Errorf("%w: item %d: quantity must be positive", ErrInvalidInput, i)
		}
		if line.UnitAmount < 0 {
			return domain.Result{}, fmt.Errorf("%w: item %d: price cannot be negative", ErrInvalidInput, i)
		}

		sum += line.UnitAmount * int64(line.Quantity)
		items = append(items, orderdomain.OrderItemRequest{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitAmount: line.UnitAmount,
		})
	}

	if req.TotalAmount != sum {
		return domain.Result{}, fmt.Errorf("%w: got %d, computed %d", ErrTotalMismatch, req.TotalAmount, sum)
	}

	order, err := s.orders.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		UserID:        req.UserID,
		Currency:      req.Currency,
		PaymentMethod: string(method),
		TotalAmount:   req.TotalAmount,
		Items:         items,
	})
	if err != nil {
		return domain.Result{}, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	result := domain.Result{Order: order}

	// The order items are a frozen copy, so a stale cart is safe. Never roll
	// back a committed order over this.
	if err := s.cart.ClearForUser(ctx, req.UserID); err != nil {
		s.log.Warn("cart clear after checkout failed",
			slog.String("user_id", req.UserID),
			slog.String("order_id", order.ID),
			slog.Any("err", err),
		)
		result.Warning = "order created but cart could not be cleared"
	}

	details, err := s.payments.Confirm(order, method)
	if err != nil {
		return domain.Result{}, err
	}
	result.Payment = details

	if s.confirm != nil {
		s.confirm.OrderConfirmed(ctx, order)
	}

	return result, nil
}
