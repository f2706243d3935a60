package rest

import (
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/catalog"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/money"
)

type productView struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}

type cartItemView struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	Quantity  int32        `json:"quantity"`
	Product   *productView `json:"product,omitempty"`
}

type cartView struct {
	ID     string         `json:"id,omitempty"`
	UserID string         `json:"userId"`
	Items  []cartItemView `json:"items"`
}

func toCartView(cart cartdomain.Cart, products map[string]catalog.Product) cartView {
	items := make([]cartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		view := cartItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
		if p, ok := products[it.ProductID]; ok {
			view.Product = &productView{
				Name:        p.Name,
				Description: p.Description,
				ImageURL:    p.ImageURL,
				Price:       money.FromMinor(p.PriceAmount),
				Currency:    p.Currency,
			}
		}
		items = append(items, view)
	}
	return cartView{ID: cart.ID, UserID: cart.UserID, Items: items}
}

type orderItemView struct {
	ProductID string          `json:"productId"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderView struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	Currency      string          `json:"currency"`
	Total         decimal.Decimal `json:"total"`
	Items         []orderItemView `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func toOrderView(order orderdomain.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orderItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     money.FromMinor(it.UnitAmount),
		})
	}
	return orderView{
		ID:            order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Currency:      order.Currency,
		Total:         money.FromMinor(order.TotalAmount),
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}
