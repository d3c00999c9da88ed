package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/service"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/httputil"
	"github.com/storefrontgo/dashboard/pkg/validator"
)

// CartHandler exposes the cart store over HTTP.
type CartHandler struct {
	cart *service.CartService
	log  *slog.Logger
}

// NewCartHandler creates the cart handler.
func NewCartHandler(cart *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

// Routes mounts the cart endpoints.
func (h *CartHandler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Delete("/", h.clear)
	r.Get("/totals", h.totals)
	r.Post("/items", h.addItem)
	r.Put("/items/{productID}", h.setQuantity)
	r.Delete("/items/{productID}", h.removeItem)
	r.Post("/items/{productID}/increment", h.increment)
	r.Post("/items/{productID}/decrement", h.decrement)
}

type addItemRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Cart   *domain.Cart      `json:"cart"`
	Totals domain.CartTotals `json:"totals"`
}

func (h *CartHandler) actor(w http.ResponseWriter, r *http.Request) (int64, bool) {
	identity := identityFromRequest(r)
	if !identity.IsAuthenticated() {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart access requires an authenticated user"), h.log)
		return 0, false
	}
	return identity.ActorID, true
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, cart *domain.Cart) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse{
		Cart:   cart,
		Totals: cart.Totals(h.cart.ShippingPolicy()),
	}})
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	h.respond(w, r, cart)
}

func (h *CartHandler) totals(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	totals, err := h.cart.Totals(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: totals})
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.cart.AddItem(r.Context(), userID, domain.Product{
		ID:          req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	h.respond(w, r, cart)
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be numeric"), h.log)
		return
	}

	var req setQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.cart.SetQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	h.respond(w, r, cart)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be numeric"), h.log)
		return
	}

	cart, err := h.cart.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	h.respond(w, r, cart)
}

func (h *CartHandler) increment(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.cart.Increment)
}

func (h *CartHandler) decrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.cart.Decrement)
}

func (h *CartHandler) adjust(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, productID int64) (*domain.Cart, error)) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be numeric"), h.log)
		return
	}

	cart, err := op(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	h.respond(w, r, cart)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.cart.Clear(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
