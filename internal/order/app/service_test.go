package app_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type captureRepo struct {
	got *domain.Order
}

func (r *captureRepo) CreateOrderTx(_ context.Context, order domain.Order) (domain.Order, error) {
	r.got = &order
	order.ID = uuid.NewString()
	return order, nil
}

func validReq() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		UserID:        uuid.NewString(),
		Currency:      "PKR",
		PaymentMethod: "easypaisa",
		TotalAmount:   3000,
		Items: []domain.OrderItemRequest{
			{ProductID: uuid.NewString(), Quantity: 3, UnitAmount: 1000},
		},
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.CreateOrderRequest)
	}{
		{"no items", func(r *domain.CreateOrderRequest) { r.Items = nil }},
		{"negative total", func(r *domain.CreateOrderRequest) { r.TotalAmount = -1 }},
		{"zero quantity", func(r *domain.CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"negative unit amount", func(r *domain.CreateOrderRequest) { r.Items[0].UnitAmount = -5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &captureRepo{}
			svc := app.NewService(repo)

			req := validReq()
			tc.mutate(&req)

			_, err := svc.CreateOrder(context.Background(), req)
			require.ErrorIs(t, err, app.ErrInvalidInput)
			assert.Nil(t, repo.got, "invalid request must not reach the store")
		})
	}
}

func TestCreateOrder_PersistsPendingWithFrozenItems(t *testing.T) {
	repo := &captureRepo{}
	svc := app.NewService(repo)

	req := validReq()
	order, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, app.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, req.Items[0].ProductID, order.Items[0].ProductID)
	assert.Equal(t, req.Items[0].UnitAmount, order.Items[0].UnitAmount)
	assert.Equal(t, req.TotalAmount, order.TotalAmount)
}
