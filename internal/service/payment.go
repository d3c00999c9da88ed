package service

import (
	"context"
	"log/slog"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/gateway"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/logger"
)

// PaymentCreator is the slice of the payment gateway the service needs.
type PaymentCreator interface {
	Create(ctx context.Context, payment gateway.PaymentRequest) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error)
}

// OrderLister fetches a client's orders for the pending-orders view.
type OrderLister interface {
	ListByClient(ctx context.Context, clientID int64) ([]domain.Order, error)
}

// PaymentEventPublisher emits the payment.submitted event. Best-effort.
type PaymentEventPublisher interface {
	PaymentSubmitted(ctx context.Context, payment *domain.Payment) error
}

// PayRequest is the validated input for a payment submission.
type PayRequest struct {
	OrderID int64               `json:"order_id" validate:"required,gt=0"`
	Amount  int64               `json:"amount" validate:"required,gt=0"`
	Method  string              `json:"method" validate:"required"`
	Card    *domain.CardDetails `json:"card,omitempty"`
}

// PaymentService submits payments and serves the payment read models.
type PaymentService struct {
	payments PaymentCreator
	orders   OrderLister
	events   PaymentEventPublisher
}

// NewPaymentService creates the payment service. events may be nil.
func NewPaymentService(payments PaymentCreator, orders OrderLister, events PaymentEventPublisher) *PaymentService {
	return &PaymentService{payments: payments, orders: orders, events: events}
}

// Pay submits exactly one payment for one order. Card details travel only for
// CARD payments; for other methods they are dropped.
func (s *PaymentService) Pay(ctx context.Context, identity domain.Identity, req PayRequest) (*domain.Payment, error) {
	if !identity.Can(domain.CapCheckout) {
		return nil, apperrors.Forbidden("payment submission is not available for this role")
	}
	if req.OrderID <= 0 {
		return nil, apperrors.InvalidInput("order id must be positive")
	}
	if req.Amount <= 0 {
		return nil, apperrors.InvalidInput("amount must be positive")
	}
	if !domain.ValidPaymentMethod(req.Method) {
		return nil, apperrors.InvalidInput("unknown payment method: " + req.Method)
	}

	outbound := gateway.PaymentRequest{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
	}
	if req.Method == domain.MethodCard {
		if req.Card == nil {
			return nil, apperrors.InvalidInput("card details are required for card payments")
		}
		outbound.CardDetails = req.Card
	}

	payment, err := s.payments.Create(ctx, outbound)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("payment submitted",
		slog.Int64("order_id", payment.OrderID),
		slog.Int64("amount", payment.Amount),
		slog.String("method", payment.Method),
		slog.String("status", payment.Status),
	)

	if s.events != nil {
		if err := s.events.PaymentSubmitted(ctx, payment); err != nil {
			log.Warn("payment event publish failed", slog.String("error", err.Error()))
		}
	}

	return payment, nil
}

// History returns the payment list visible to the identity. Admins see all
// payments; users see only payments against their own orders.
func (s *PaymentService) History(ctx context.Context, identity domain.Identity) ([]domain.Payment, error) {
	if identity.Can(domain.CapViewAllOrders) {
		return s.payments.List(ctx)
	}
	if !identity.IsAuthenticated() {
		return nil, apperrors.Unauthorized("payment history requires an authenticated user")
	}

	orders, err := s.orders.ListByClient(ctx, identity.ActorID)
	if err != nil {
		return nil, err
	}

	var history []domain.Payment
	for _, o := range orders {
		payments, err := s.payments.ByOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		history = append(history, payments...)
	}
	return history, nil
}

// PendingOrders returns the client's orders still awaiting payment.
func (s *PaymentService) PendingOrders(ctx context.Context, identity domain.Identity) ([]domain.Order, error) {
	if !identity.IsAuthenticated() {
		return nil, apperrors.Unauthorized("pending orders require an authenticated user")
	}

	orders, err := s.orders.ListByClient(ctx, identity.ActorID)
	if err != nil {
		return nil, err
	}

	pending := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsPending() {
			pending = append(pending, o)
		}
	}
	return pending, nil
}
