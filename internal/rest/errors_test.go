package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/identity"
	"github.com/dwikikusuma/storefront/internal/payment"
	userapp "github.com/dwikikusuma/storefront/internal/user/app"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input -> 400", cartapp.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"wrapped invalid input -> 400", fmt.Errorf("%w: bad qty", checkoutapp.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"unsupported method -> 400", payment.ErrUnsupportedMethod, http.StatusBadRequest, "UNSUPPORTED_PAYMENT_METHOD"},
		{"total mismatch -> 400", checkoutapp.ErrTotalMismatch, http.StatusBadRequest, "TOTAL_MISMATCH"},
		{"unauthenticated -> 401", identity.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"cart not found -> 404", cartapp.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"user not found -> 404", userapp.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"order creation -> 500", fmt.Errorf("%w: db down", checkoutapp.ErrOrderCreation), http.StatusInternalServerError, "ORDER_CREATION_FAILED"},
		{"raw storage error -> 500", errors.New("connection refused"), http.StatusInternalServerError, "STORAGE_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, gotCode := statusFromError(tc.err)
			if gotStatus != tc.wantStatus || gotCode != tc.wantCode {
				t.Fatalf("got (%d, %s), want (%d, %s)", gotStatus, gotCode, tc.wantStatus, tc.wantCode)
			}
		})
	}
}
