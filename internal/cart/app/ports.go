package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo interface {
	// Get returns the user's cart with its items. Returns ErrNotFound when the
	// user has no cart yet.
	Get(ctx context.Context, userID string) (domain.Cart, error)

	// GetOrCreate returns the user's cart, creating an empty one if absent.
	// Safe to call concurrently for the same user: exactly one cart row
	// survives and every caller observes it.
	GetOrCreate(ctx context.Context, userID string) (domain.Cart, error)

	// UpsertItemIncrement inserts a (cart, product) line with the given
	// quantity, or adds the quantity to the existing line. One statement, so
	// two concurrent adds for the same product cannot both insert.
	UpsertItemIncrement(ctx context.Context, cartID string, item domain.CartItem) error

	// RemoveItem deletes a single line. Returns ErrNotFound when the cart has
	// no line for the product.
	RemoveItem(ctx context.Context, cartID string, productID string) error

	// ClearItems deletes every line of the cart, keeping the cart row.
	// Idempotent.
	ClearItems(ctx context.Context, cartID string) error
}
