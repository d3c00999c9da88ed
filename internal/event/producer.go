// Package event publishes dashboard domain events to Kafka.
package event

import (
	"context"
	"strconv"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/pkg/kafka"
	"github.com/storefrontgo/dashboard/pkg/logger"
)

const source = "dashboard"

// Topics the dashboard publishes to.
const (
	TopicCheckoutCompleted = "dashboard.checkout.completed"
	TopicPaymentSubmitted  = "dashboard.payment.submitted"
)

// Event types carried in the envelope.
const (
	TypeCheckoutCompleted = "checkout.completed"
	TypePaymentSubmitted  = "payment.submitted"
)

// CheckoutCompletedPayload is the checkout.completed event body.
type CheckoutCompletedPayload struct {
	ClientID    int64          `json:"client_id"`
	Policy      string         `json:"policy"`
	Attempted   int            `json:"attempted"`
	Succeeded   int            `json:"succeeded"`
	CartCleared bool           `json:"cart_cleared"`
	Orders      []domain.Order `json:"orders,omitempty"`
}

// PaymentSubmittedPayload is the payment.submitted event body.
type PaymentSubmittedPayload struct {
	PaymentID int64  `json:"payment_id"`
	OrderID   int64  `json:"order_id"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
}

// Publisher emits dashboard events through the shared Kafka producer.
type Publisher struct {
	producer *kafka.Producer
}

// NewPublisher creates an event publisher.
func NewPublisher(producer *kafka.Producer) *Publisher {
	return &Publisher{producer: producer}
}

// CheckoutCompleted publishes the outcome of a checkout fan-out.
func (p *Publisher) CheckoutCompleted(ctx context.Context, clientID int64, result *domain.CheckoutResult, policy string) error {
	payload := CheckoutCompletedPayload{
		ClientID:    clientID,
		Policy:      policy,
		Attempted:   result.Attempted,
		Succeeded:   result.Succeeded,
		CartCleared: result.CartCleared,
		Orders:      result.Orders,
	}

	evt, err := kafka.NewEvent(TypeCheckoutCompleted, strconv.FormatInt(clientID, 10), "checkout", source, payload)
	if err != nil {
		return err
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	return p.producer.Publish(ctx, TopicCheckoutCompleted, evt)
}

// PaymentSubmitted publishes a successfully submitted payment.
func (p *Publisher) PaymentSubmitted(ctx context.Context, payment *domain.Payment) error {
	payload := PaymentSubmittedPayload{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		Status:    payment.Status,
	}

	evt, err := kafka.NewEvent(TypePaymentSubmitted, strconv.FormatInt(payment.OrderID, 10), "payment", source, payload)
	if err != nil {
		return err
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	return p.producer.Publish(ctx, TopicPaymentSubmitted, evt)
}
