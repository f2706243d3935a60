package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

const OrderStatusPending = "PENDING"

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if req.TotalAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: total cannot be negative, got %d", ErrInvalidInput, req.TotalAmount)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitAmount < 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit amount cannot be negative, got %d", ErrInvalidInput, i, item.UnitAmount)
		}

		items = append(items, domain.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitAmount: item.UnitAmount,
		})
	}

	order := domain.Order{
		UserID:        req.UserID,
		Status:        OrderStatusPending,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   req.TotalAmount,
		Items:         items,
	}

	return s.repo.CreateOrderTx(ctx, order)
}
