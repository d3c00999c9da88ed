package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/pkg/httpclient"
)

const orderServiceName = "order-service"

// OrderGateway calls the order service.
type OrderGateway struct {
	client  Doer
	baseURL string
}

// NewOrderGateway creates an order service client.
func NewOrderGateway(client Doer, baseURL string) *OrderGateway {
	return &OrderGateway{client: client, baseURL: baseURL}
}

// Create places one order for a single product line. The order service takes
// the parameters on the query string.
func (g *OrderGateway) Create(ctx context.Context, productID int64, quantity int, clientID int64) (*domain.Order, error) {
	params := url.Values{}
	params.Set("productId", strconv.FormatInt(productID, 10))
	params.Set("quantity", strconv.Itoa(quantity))
	params.Set("clientId", strconv.FormatInt(clientID, 10))

	endpoint := joinURL(g.baseURL, "/api/orders") + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, orderServiceName)
	}

	var order domain.Order
	if err := decodeBody(resp, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List fetches every order. Admin surface only.
func (g *OrderGateway) List(ctx context.Context) ([]domain.Order, error) {
	return g.list(ctx, joinURL(g.baseURL, "/api/orders"))
}

// ListByClient fetches a single client's orders.
func (g *OrderGateway) ListByClient(ctx context.Context, clientID int64) ([]domain.Order, error) {
	endpoint := joinURL(g.baseURL, "/api/orders") + "?clientId=" + strconv.FormatInt(clientID, 10)
	return g.list(ctx, endpoint)
}

func (g *OrderGateway) list(ctx context.Context, endpoint string) ([]domain.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create list orders request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, orderServiceName)
	}

	var orders []domain.Order
	if err := decodeBody(resp, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus transitions an order to the given status.
func (g *OrderGateway) UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error) {
	endpoint := fmt.Sprintf("%s/api/orders/%d/status?status=%s",
		joinURL(g.baseURL, ""), orderID, url.QueryEscape(status))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create update status request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, orderServiceName)
	}

	var order domain.Order
	if err := decodeBody(resp, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes an order.
func (g *OrderGateway) Delete(ctx context.Context, orderID int64) error {
	endpoint := fmt.Sprintf("%s/api/orders/%d", joinURL(g.baseURL, ""), orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create delete order request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call order service: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, orderServiceName)
	}
	_ = resp.Body.Close()
	return nil
}
