package rest

import (
	"errors"
	"net/http"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/catalog"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/identity"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/payment"
	userapp "github.com/dwikikusuma/storefront/internal/user/app"
	"github.com/dwikikusuma/storefront/pkg/money"
)

// statusFromError maps an application error to an HTTP status and a short
// machine-checkable code. Anything unrecognized is a storage-side failure:
// raw store errors never reach the client.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, payment.ErrUnsupportedMethod):
		return http.StatusBadRequest, "UNSUPPORTED_PAYMENT_METHOD"
	case errors.Is(err, checkoutapp.ErrTotalMismatch):
		return http.StatusBadRequest, "TOTAL_MISMATCH"
	case errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, userapp.ErrInvalidInput),
		errors.Is(err, money.ErrPrecision):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, identity.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, cartapp.ErrNotFound),
		errors.Is(err, userapp.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, checkoutapp.ErrOrderCreation):
		return http.StatusInternalServerError, "ORDER_CREATION_FAILED"
	default:
		return http.StatusInternalServerError, "STORAGE_ERROR"
	}
}
