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

const clientServiceName = "client-service"

// ClientGateway calls the client service.
type ClientGateway struct {
	client  Doer
	baseURL string
}

// NewClientGateway creates a client service client.
func NewClientGateway(client Doer, baseURL string) *ClientGateway {
	return &ClientGateway{client: client, baseURL: baseURL}
}

// List fetches every registered client.
func (g *ClientGateway) List(ctx context.Context) ([]domain.Client, error) {
	endpoint := joinURL(g.baseURL, "/api/clients")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create list clients request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call client service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, clientServiceName)
	}

	var clients []domain.Client
	if err := decodeBody(resp, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// Create registers a new client.
func (g *ClientGateway) Create(ctx context.Context, client domain.Client) (*domain.Client, error) {
	body, err := json.Marshal(client)
	if err != nil {
		return nil, fmt.Errorf("marshal client request: %w", err)
	}

	endpoint := joinURL(g.baseURL, "/api/clients")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create client request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call client service: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, clientServiceName)
	}

	var created domain.Client
	if err := decodeBody(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a client.
func (g *ClientGateway) Delete(ctx context.Context, clientID int64) error {
	endpoint := joinURL(g.baseURL, "/api/clients/") + strconv.FormatInt(clientID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create delete client request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call client service: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, clientServiceName)
	}
	_ = resp.Body.Close()
	return nil
}
