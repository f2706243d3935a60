// Package catalog reads product records from the external content API. The
// catalog is never mutated from here.
package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image,omitempty"`

	// PriceAmount is in minor units of Currency.
	PriceAmount int64  `json:"priceAmount"`
	Currency    string `json:"currency"`
}

type Reader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}
