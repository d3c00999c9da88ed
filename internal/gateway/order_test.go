package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/httpclient"
)

func testClient() *httpclient.Client {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return httpclient.New(cfg)
}

func TestOrderGateway_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "11", r.URL.Query().Get("productId"))
		assert.Equal(t, "2", r.URL.Query().Get("quantity"))
		assert.Equal(t, "42", r.URL.Query().Get("clientId"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Order{
			ID: 501, ClientID: 42, ProductID: 11, Quantity: 2, TotalPrice: 50000, Status: domain.OrderStatusCreated,
		})
	}))
	defer srv.Close()

	gw := NewOrderGateway(testClient(), srv.URL)
	order, err := gw.Create(context.Background(), 11, 2, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(501), order.ID)
	assert.Equal(t, domain.OrderStatusCreated, order.Status)
}

// Order creation must reach the order service exactly once even when the
// response is a 5xx: the downstream may have persisted the order before
// failing, and a re-sent POST would duplicate it.
func TestOrderGateway_CreateSendsExactlyOnePost(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := httpclient.DefaultConfig()
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	gw := NewOrderGateway(httpclient.New(cfg), srv.URL)

	_, err := gw.Create(context.Background(), 11, 1, 42)
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestOrderGateway_CreateDownstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"product not found"}`))
	}))
	defer srv.Close()

	gw := NewOrderGateway(testClient(), srv.URL)
	_, err := gw.Create(context.Background(), 999, 1, 42)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOrderGateway_ListByClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("clientId"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.Order{
			{ID: 1, ClientID: 7, Status: domain.OrderStatusCreated},
			{ID: 2, ClientID: 7, Status: domain.OrderStatusPaid},
		})
	}))
	defer srv.Close()

	gw := NewOrderGateway(testClient(), srv.URL)
	orders, err := gw.ListByClient(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].IsPending())
	assert.False(t, orders[1].IsPending())
}

func TestOrderGateway_UpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/5/status", r.URL.Path)
		assert.Equal(t, domain.OrderStatusShipped, r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Order{ID: 5, Status: domain.OrderStatusShipped})
	}))
	defer srv.Close()

	gw := NewOrderGateway(testClient(), srv.URL)
	order, err := gw.UpdateStatus(context.Background(), 5, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
}

func TestOrderGateway_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/orders/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gw := NewOrderGateway(testClient(), srv.URL)
	assert.NoError(t, gw.Delete(context.Background(), 9))
}
