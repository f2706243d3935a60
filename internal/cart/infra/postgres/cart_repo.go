package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Cart{}, app.ErrInvalidInput
	}

	var cart domain.Cart
	var cartID uuid.UUID
	err = r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`,
		userUUID,
	).Scan(&cartID, &userUUID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, errors.Wrap(err, "get cart")
	}

	cart.ID = cartID.String()
	cart.UserID = userUUID.String()

	cart.Items, err = r.listItems(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (r *CartRepo) listItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY created_at`,
		cartID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list cart items")
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var id, productID uuid.UUID
		var qty int32
		if err := rows.Scan(&id, &productID, &qty); err != nil {
			return nil, errors.Wrap(err, "scan cart item")
		}
		items = append(items, domain.CartItem{
			ID:        id.String(),
			ProductID: productID.String(),
			Quantity:  qty,
		})
	}
	return items, errors.Wrap(rows.Err(), "iterate cart items")
}

func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := r.Get(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, app.ErrNotFound) {
		return domain.Cart{}, err
	}

	userUUID, parseErr := uuid.Parse(userID)
	if parseErr != nil {
		return domain.Cart{}, app.ErrInvalidInput
	}

	_, createErr := r.db.ExecContext(ctx,
		`INSERT INTO carts (user_id) VALUES ($1)`,
		userUUID,
	)
	if createErr == nil {
		return r.Get(ctx, userID)
	}

	// Someone else created the cart between our read and write; the unique
	// index on user_id guarantees a single row, so just re-read it.
	if isUniqueViolation(createErr) {
		return r.Get(ctx, userID)
	}

	return domain.Cart{}, errors.Wrap(createErr, "create cart")
}

func (r *CartRepo) UpsertItemIncrement(ctx context.Context, cartID string, item domain.CartItem) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return app.ErrInvalidInput
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return app.ErrInvalidInput
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		               updated_at = now()`,
		cartUUID, productUUID, item.Quantity,
	)
	return errors.Wrap(err, "upsert cart item")
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID string, productID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return app.ErrInvalidInput
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return app.ErrInvalidInput
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartUUID, productUUID,
	)
	if err != nil {
		return errors.Wrap(err, "remove cart item")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "remove cart item rows affected")
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) ClearItems(ctx context.Context, cartID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return app.ErrInvalidInput
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartUUID)
	return errors.Wrap(err, "clear cart items")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
