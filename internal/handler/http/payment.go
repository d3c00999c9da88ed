package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/service"
	"github.com/storefrontgo/dashboard/pkg/httputil"
	"github.com/storefrontgo/dashboard/pkg/validator"
)

// PaymentHandler exposes payment submission and the payment read models.
type PaymentHandler struct {
	payments *service.PaymentService
	log      *slog.Logger
}

// NewPaymentHandler creates the payment handler.
func NewPaymentHandler(payments *service.PaymentService, log *slog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, log: log}
}

// Routes mounts the payment endpoints.
func (h *PaymentHandler) Routes(r chi.Router) {
	r.Post("/", h.pay)
	r.Get("/", h.history)
	r.Get("/pending-orders", h.pendingOrders)
}

type payRequest struct {
	OrderID int64               `json:"order_id" validate:"required,gt=0"`
	Amount  int64               `json:"amount" validate:"required,gt=0"`
	Method  string              `json:"method" validate:"required,oneof=CARD CASH TRANSFER"`
	Card    *domain.CardDetails `json:"card,omitempty"`
}

func (h *PaymentHandler) pay(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	var req payRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	payment, err := h.payments.Pay(r.Context(), identity, service.PayRequest{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
		Card:    req.Card,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: payment})
}

func (h *PaymentHandler) history(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	history, err := h.payments.History(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}

	page, perPage := pageParams(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: httputil.Paginate(history, page, perPage)})
}

func (h *PaymentHandler) pendingOrders(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	pending, err := h.payments.PendingOrders(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pending})
}
