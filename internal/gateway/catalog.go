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

const productServiceName = "product-service"

// CatalogGateway calls the product service.
type CatalogGateway struct {
	client  Doer
	baseURL string
}

// NewCatalogGateway creates a product service client.
func NewCatalogGateway(client Doer, baseURL string) *CatalogGateway {
	return &CatalogGateway{client: client, baseURL: baseURL}
}

// List fetches the product catalog.
func (g *CatalogGateway) List(ctx context.Context) ([]domain.Product, error) {
	endpoint := joinURL(g.baseURL, "/api/products")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create list products request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call product service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, productServiceName)
	}

	var products []domain.Product
	if err := decodeBody(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create adds a product to the catalog.
func (g *CatalogGateway) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	body, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("marshal product request: %w", err)
	}

	endpoint := joinURL(g.baseURL, "/api/products")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create product request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call product service: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, productServiceName)
	}

	var created domain.Product
	if err := decodeBody(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a product from the catalog.
func (g *CatalogGateway) Delete(ctx context.Context, productID int64) error {
	endpoint := joinURL(g.baseURL, "/api/products/") + strconv.FormatInt(productID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create delete product request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call product service: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, productServiceName)
	}
	_ = resp.Body.Close()
	return nil
}

// Get fetches one product by id.
func (g *CatalogGateway) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	endpoint := joinURL(g.baseURL, "/api/products/") + strconv.FormatInt(productID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create get product request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call product service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, productServiceName)
	}

	var product domain.Product
	if err := decodeBody(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
