package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/pkg/httpclient"
)

const paymentServiceName = "payment-service"

// PaymentRequest is the payload sent to the payment service. The embedded
// card details are flattened into the JSON body and omitted entirely for
// non-card methods.
type PaymentRequest struct {
	OrderID int64  `json:"orderId"`
	Amount  int64  `json:"amount"`
	Method  string `json:"method"`
	*domain.CardDetails
}

// PaymentGateway calls the payment service.
type PaymentGateway struct {
	client  Doer
	baseURL string
}

// NewPaymentGateway creates a payment service client.
func NewPaymentGateway(client Doer, baseURL string) *PaymentGateway {
	return &PaymentGateway{client: client, baseURL: baseURL}
}

// Create submits a payment for an order.
func (g *PaymentGateway) Create(ctx context.Context, payment PaymentRequest) (*domain.Payment, error) {
	body, err := json.Marshal(payment)
	if err != nil {
		return nil, fmt.Errorf("marshal payment request: %w", err)
	}

	endpoint := joinURL(g.baseURL, "/api/payments")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call payment service: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, paymentServiceName)
	}

	var created domain.Payment
	if err := decodeBody(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List fetches every payment. Admin surface only.
func (g *PaymentGateway) List(ctx context.Context) ([]domain.Payment, error) {
	return g.list(ctx, joinURL(g.baseURL, "/api/payments"))
}

// ByOrder fetches the payments recorded against one order.
func (g *PaymentGateway) ByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	endpoint := joinURL(g.baseURL, "/api/payments/by-order/") + strconv.FormatInt(orderID, 10)
	return g.list(ctx, endpoint)
}

func (g *PaymentGateway) list(ctx context.Context, endpoint string) ([]domain.Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create list payments request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call payment service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, paymentServiceName)
	}

	var payments []domain.Payment
	if err := decodeBody(resp, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
