package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/catalog"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/identity"
	userapp "github.com/dwikikusuma/storefront/internal/user/app"
	userdomain "github.com/dwikikusuma/storefront/internal/user/domain"
	"github.com/dwikikusuma/storefront/pkg/money"
)

const defaultCurrency = "PKR"

type Handlers struct {
	cart     *cartapp.Service
	checkout *checkoutapp.Service
	users    *userapp.Service
	enricher *catalog.Enricher
	verifier identity.Verifier
	log      *slog.Logger
}

func NewHandlers(
	cart *cartapp.Service,
	checkout *checkoutapp.Service,
	users *userapp.Service,
	enricher *catalog.Enricher,
	verifier identity.Verifier,
	log *slog.Logger,
) *Handlers {
	return &Handlers{
		cart:     cart,
		checkout: checkout,
		users:    users,
		enricher: enricher,
		verifier: verifier,
		log:      log,
	}
}

func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/cart", h.requireSession(h.getCart)).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.requireSession(h.addToCart)).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{productID}", h.requireSession(h.removeFromCart)).Methods(http.MethodDelete)

	api.HandleFunc("/payment/checkout", h.requireSession(h.postCheckout)).Methods(http.MethodPost)

	api.HandleFunc("/users/{id}", h.requireSession(h.getProfile)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.requireSession(h.updateProfile)).Methods(http.MethodPut)

	api.HandleFunc("/auth/reset-password", h.requestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password/confirm", h.confirmPasswordReset).Methods(http.MethodPost)

	return r
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.GetCart(r.Context(), principal(r.Context()))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.enrichedCartView(r, cart))
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int32 `json:"quantity"`
}

func (h *Handlers) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, fmt.Errorf("%w: malformed body", cartapp.ErrInvalidInput))
		return
	}

	// Quantity omitted means one; explicit zero or negative is rejected
	// downstream.
	qty := int32(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cart, err := h.cart.AddItem(r.Context(), principal(r.Context()), req.ProductID, qty)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.enrichedCartView(r, cart))
}

func (h *Handlers) removeFromCart(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productID"]

	cart, err := h.cart.RemoveItem(r.Context(), principal(r.Context()), productID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.enrichedCartView(r, cart))
}

func (h *Handlers) enrichedCartView(r *http.Request, cart cartdomain.Cart) cartView {
	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	return toCartView(cart, h.enricher.Products(r.Context(), ids))
}

type checkoutLineRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type checkoutRequest struct {
	PaymentMethod string                `json:"paymentMethod"`
	Items         []checkoutLineRequest `json:"items"`
	Total         decimal.Decimal       `json:"total"`
}

type checkoutResponse struct {
	Success        bool      `json:"success"`
	Order          orderView `json:"order"`
	PaymentDetails any       `json:"paymentDetails"`
	Warning        string    `json:"warning,omitempty"`
}

func (h *Handlers) postCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, fmt.Errorf("%w: malformed body", checkoutapp.ErrInvalidInput))
		return
	}

	total, err := money.ToMinor(req.Total)
	if err != nil {
		h.respondError(w, err)
		return
	}

	lines := make([]checkoutdomain.Line, 0, len(req.Items))
	for _, item := range req.Items {
		unit, err := money.ToMinor(item.Price)
		if err != nil {
			h.respondError(w, err)
			return
		}
		lines = append(lines, checkoutdomain.Line{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitAmount: unit,
		})
	}

	result, err := h.checkout.Checkout(r.Context(), checkoutdomain.Request{
		UserID:        principal(r.Context()),
		PaymentMethod: req.PaymentMethod,
		Lines:         lines,
		TotalAmount:   total,
		Currency:      defaultCurrency,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, checkoutResponse{
		Success:        true,
		Order:          toOrderView(result.Order),
		PaymentDetails: result.Payment,
		Warning:        result.Warning,
	})
}

type profileView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func toProfileView(u userdomain.User) profileView {
	return profileView{ID: u.ID, Email: u.Email, Name: u.Name, Address: u.Address, Phone: u.Phone}
}

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id != principal(r.Context()) {
		// Do not reveal whether the user exists.
		h.respondError(w, userapp.ErrNotFound)
		return
	}

	user, err := h.users.GetProfile(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"user": toProfileView(user)})
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id != principal(r.Context()) {
		h.respondError(w, userapp.ErrNotFound)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, fmt.Errorf("%w: malformed body", userapp.ErrInvalidInput))
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), id, userdomain.ProfileUpdate{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"user": toProfileView(user)})
}

func (h *Handlers) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, fmt.Errorf("%w: malformed body", userapp.ErrInvalidInput))
		return
	}

	if err := h.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Password reset link sent"})
}

func (h *Handlers) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, fmt.Errorf("%w: malformed body", userapp.ErrInvalidInput))
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
