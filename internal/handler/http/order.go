package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontgo/dashboard/internal/service"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/httputil"
	"github.com/storefrontgo/dashboard/pkg/validator"
)

// OrderHandler exposes the order read models and admin order management.
type OrderHandler struct {
	orders *service.OrderService
	log    *slog.Logger
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(orders *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// Routes mounts the order endpoints.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{orderID}/status", h.updateStatus)
	r.Delete("/{orderID}", h.remove)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	orders, err := h.orders.List(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}

	page, perPage := pageParams(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: httputil.Paginate(orders, page, perPage)})
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	orderID, err := pathID(r, "orderID")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("order id must be numeric"), h.log)
		return
	}

	var req updateStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), identity, orderID, req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

func (h *OrderHandler) remove(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	orderID, err := pathID(r, "orderID")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("order id must be numeric"), h.log)
		return
	}

	if err := h.orders.Delete(r.Context(), identity, orderID); err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
