package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo CartRepo
}

func NewService(repo CartRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// GetCart returns the user's cart. A user who never added anything gets an
// empty cart rather than an error; only store failures propagate.
func (s *Service) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	return cart, err
}

// AddItem merges (productID, quantity) into the user's cart: the cart is
// created if absent, and an existing line for the product is incremented
// instead of duplicated. Returns the refreshed cart.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int32) (domain.Cart, error) {
	if strings.TrimSpace(productID) == "" || quantity <= 0 {
		return domain.Cart{}, ErrInvalidInput
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	err = s.repo.UpsertItemIncrement(ctx, cart.ID, domain.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return domain.Cart{}, err
	}

	return s.repo.Get(ctx, userID)
}

// RemoveItem deletes one line from the caller's own cart. A product that is
// not in the caller's cart, or a caller without a cart, is ErrNotFound so
// clients can detect stale state.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return domain.Cart{}, err
	}

	return s.repo.Get(ctx, userID)
}

// ClearForUser purges every line of the user's cart, keeping the cart row.
// A user without a cart is a no-op.
func (s *Service) ClearForUser(ctx context.Context, userID string) error {
	cart, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.repo.ClearItems(ctx, cart.ID)
}
