package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "tx failed; rollback also failed: %v", rbErr)
		}
		return err
	}

	return errors.Wrap(tx.Commit(), "commit tx")
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	userUUID, err := uuid.Parse(order.UserID)
	if err != nil {
		return domain.Order{}, app.ErrInvalidInput
	}

	var created domain.Order

	err = r.execTX(ctx, func(tx *sql.Tx) error {
		var orderID uuid.UUID
		var createdAt time.Time
		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (user_id, status, currency, payment_method, total_amount)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			userUUID, order.Status, order.Currency, order.PaymentMethod, order.TotalAmount,
		).Scan(&orderID, &createdAt)
		if err != nil {
			return errors.Wrap(err, "insert order")
		}

		items := make([]domain.OrderItem, 0, len(order.Items))
		for i, item := range order.Items {
			productUUID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return errors.Wrapf(app.ErrInvalidInput, "item %d: bad product id", i)
			}

			var itemID uuid.UUID
			err = tx.QueryRowContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, unit_amount)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id`,
				orderID, productUUID, item.Quantity, item.UnitAmount,
			).Scan(&itemID)
			if err != nil {
				return errors.Wrapf(err, "insert order item %d", i)
			}

			items = append(items, domain.OrderItem{
				ID:         itemID.String(),
				OrderID:    orderID.String(),
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitAmount: item.UnitAmount,
			})
		}

		created = domain.Order{
			ID:            orderID.String(),
			UserID:        order.UserID,
			Status:        order.Status,
			Currency:      order.Currency,
			PaymentMethod: order.PaymentMethod,
			TotalAmount:   order.TotalAmount,
			Items:         items,
			CreatedAt:     createdAt,
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return created, nil
}
