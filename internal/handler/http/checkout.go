package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/service"
	"github.com/storefrontgo/dashboard/pkg/httputil"
)

// CheckoutHandler exposes the checkout orchestrator.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	log      *slog.Logger
}

// NewCheckoutHandler creates the checkout handler.
func NewCheckoutHandler(checkout *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

// Routes mounts the checkout endpoints.
func (h *CheckoutHandler) Routes(r chi.Router) {
	r.Post("/", h.checkoutCart)
	r.Get("/history", h.history)
}

type checkoutResponse struct {
	Message     string             `json:"message"`
	Attempted   int                `json:"attempted"`
	Succeeded   int                `json:"succeeded"`
	CartCleared bool               `json:"cart_cleared"`
	Orders      []domain.Order     `json:"orders,omitempty"`
	FailedItems []domain.CartEntry `json:"failed_items,omitempty"`
}

func (h *CheckoutHandler) checkoutCart(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	result, err := h.checkout.Checkout(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: checkoutResponse{
		Message:     fmt.Sprintf("%d orders placed", result.Succeeded),
		Attempted:   result.Attempted,
		Succeeded:   result.Succeeded,
		CartCleared: result.CartCleared,
		Orders:      result.Orders,
		FailedItems: result.FailedItems,
	}})
}

func (h *CheckoutHandler) history(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)
	if !identity.IsAuthenticated() {
		httputil.WriteError(w, r, errUnauthenticated("checkout history"), h.log)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.checkout.History(r.Context(), identity.ActorID, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	if records == nil {
		records = []domain.CheckoutRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: records})
}
