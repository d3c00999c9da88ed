package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/gateway"
	"github.com/storefrontgo/dashboard/internal/service"
	"github.com/storefrontgo/dashboard/pkg/health"
	"github.com/storefrontgo/dashboard/pkg/middleware"
)

// stubOrders implements the order gateway surface in memory.
type stubOrders struct {
	nextID  int64
	orders  []domain.Order
	failFor map[int64]error
}

func (s *stubOrders) Create(_ context.Context, productID int64, quantity int, clientID int64) (*domain.Order, error) {
	if err, ok := s.failFor[productID]; ok {
		return nil, err
	}
	s.nextID++
	o := domain.Order{ID: s.nextID, ClientID: clientID, ProductID: productID, Quantity: quantity, Status: domain.OrderStatusCreated}
	s.orders = append(s.orders, o)
	return &o, nil
}

func (s *stubOrders) List(context.Context) ([]domain.Order, error) { return s.orders, nil }

func (s *stubOrders) ListByClient(_ context.Context, clientID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, orderID int64, status string) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			return &s.orders[i], nil
		}
	}
	return nil, errors.New("order not found")
}

func (s *stubOrders) Delete(_ context.Context, orderID int64) error {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return errors.New("order not found")
}

type stubPayments struct {
	created []gateway.PaymentRequest
}

func (s *stubPayments) Create(_ context.Context, req gateway.PaymentRequest) (*domain.Payment, error) {
	s.created = append(s.created, req)
	return &domain.Payment{ID: int64(len(s.created)), OrderID: req.OrderID, Amount: req.Amount, Method: req.Method, Status: domain.PaymentStatusPaid}, nil
}

func (s *stubPayments) List(context.Context) ([]domain.Payment, error) {
	return []domain.Payment{}, nil
}

func (s *stubPayments) ByOrder(context.Context, int64) ([]domain.Payment, error) {
	return []domain.Payment{}, nil
}

type stubCatalog struct {
	products []domain.Product
	nextID   int64
}

func (s *stubCatalog) List(context.Context) ([]domain.Product, error) { return s.products, nil }

func (s *stubCatalog) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.nextID++
	p.ID = s.nextID
	s.products = append(s.products, p)
	return &p, nil
}

func (s *stubCatalog) Delete(_ context.Context, productID int64) error {
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return errors.New("product not found")
}

type stubClients struct {
	clients []domain.Client
	nextID  int64
}

func (s *stubClients) List(context.Context) ([]domain.Client, error) { return s.clients, nil }

func (s *stubClients) Create(_ context.Context, c domain.Client) (*domain.Client, error) {
	s.nextID++
	c.ID = s.nextID
	s.clients = append(s.clients, c)
	return &c, nil
}

func (s *stubClients) Delete(_ context.Context, clientID int64) error {
	for i := range s.clients {
		if s.clients[i].ID == clientID {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return errors.New("client not found")
}

type stubNotifications struct{}

func (stubNotifications) List(context.Context) ([]domain.Notification, error) {
	return []domain.Notification{{ID: 1, Subject: "order shipped"}}, nil
}

type testEnv struct {
	server  *httptest.Server
	orders  *stubOrders
	catalog *stubCatalog
	clients *stubClients
}

func newTestEnv(t *testing.T, policy string) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cartSvc := service.NewCartService(nil, domain.DefaultShippingPolicy(), log)
	orders := &stubOrders{failFor: map[int64]error{}}
	catalog := &stubCatalog{products: []domain.Product{{ID: 1, Name: "Mouse", Price: 12000}}, nextID: 1}
	clients := &stubClients{}
	checkoutSvc := service.NewCheckoutService(cartSvc, orders, policy, nil, nil)
	paymentSvc := service.NewPaymentService(&stubPayments{}, orders, nil)
	orderSvc := service.NewOrderService(orders)
	catalogSvc := service.NewCatalogService(catalog)
	clientSvc := service.NewClientService(clients)

	router := NewRouter(RouterDeps{
		Cart:     NewCartHandler(cartSvc, log),
		Checkout: NewCheckoutHandler(checkoutSvc, log),
		Payment:  NewPaymentHandler(paymentSvc, log),
		Order:    NewOrderHandler(orderSvc, log),
		Catalog:  NewCatalogHandler(catalog, stubNotifications{}, catalogSvc, log),
		Client:   NewClientHandler(clientSvc, log),
		Health:   health.NewHandler(),
		Logger:   log,
		CORS:     middleware.DefaultCORSConfig(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, orders: orders, catalog: catalog, clients: clients}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, userID int64, role string) *http.Response {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
		req.Header.Set("X-User-Role", role)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

func TestCartEndpoints_AddAndTotals(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"product_id": 1, "name": "Mouse", "price": 30000}, 7, "USER")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body cartResponse
	decodeData(t, resp, &body)
	require.Len(t, body.Cart.Entries, 1)
	assert.Equal(t, 1, body.Totals.ItemCount)
	assert.Equal(t, int64(30000), body.Totals.Subtotal)
	assert.Equal(t, int64(5000), body.Totals.ShippingCost)
	assert.Equal(t, int64(35000), body.Totals.Total)
}

func TestCartEndpoints_RequireIdentity(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodGet, "/api/v1/cart", nil, 0, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartEndpoints_InvalidUserIDHeader(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/cart", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "not-a-number")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutEndpoint_FullFlow(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"product_id": 1, "name": "Mouse", "price": 12000}, 7, "USER")
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"product_id": 2, "name": "Keyboard", "price": 30000}, 7, "USER")
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/v1/checkout", nil, 7, "USER")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body checkoutResponse
	decodeData(t, resp, &body)
	assert.Equal(t, "2 orders placed", body.Message)
	assert.Equal(t, 2, body.Succeeded)
	assert.True(t, body.CartCleared)

	// cart is empty afterwards
	resp = env.do(t, http.MethodGet, "/api/v1/cart", nil, 7, "USER")
	var after cartResponse
	decodeData(t, resp, &after)
	assert.Empty(t, after.Cart.Entries)
}

func TestCheckoutEndpoint_EmptyCart(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/checkout", nil, 7, "USER")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutEndpoint_Unauthenticated(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/checkout", nil, 0, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckoutEndpoint_StrictFailureKeepsCart(t *testing.T) {
	env := newTestEnv(t, domain.PolicyStrict)
	env.orders.failFor[2] = errors.New("out of stock")

	resp := env.do(t, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"product_id": 1, "name": "Mouse", "price": 12000}, 7, "USER")
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"product_id": 2, "name": "Keyboard", "price": 30000}, 7, "USER")
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/v1/checkout", nil, 7, "USER")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/cart", nil, 7, "USER")
	var after cartResponse
	decodeData(t, resp, &after)
	assert.Len(t, after.Cart.Entries, 2)
}

func TestPaymentEndpoint_Pay(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/payments",
		map[string]any{"order_id": 5, "amount": 42000, "method": "CASH"}, 7, "USER")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payment domain.Payment
	decodeData(t, resp, &payment)
	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
}

func TestPaymentEndpoint_RejectsUnknownMethod(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/payments",
		map[string]any{"order_id": 5, "amount": 42000, "method": "BARTER"}, 7, "USER")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderEndpoints_AdminManagement(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)
	_, err := env.orders.Create(context.Background(), 1, 1, 7)
	require.NoError(t, err)

	resp := env.do(t, http.MethodPut, "/api/v1/orders/1/status",
		map[string]any{"status": "SHIPPED"}, 1, "ADMIN")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var order domain.Order
	decodeData(t, resp, &order)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)

	// regular users cannot manage orders
	resp = env.do(t, http.MethodDelete, "/api/v1/orders/1", nil, 7, "USER")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProductsEndpoint_Paginated(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodGet, "/api/v1/products?page=1&per_page=10", nil, 0, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var envelope struct {
		Data struct {
			Data       []domain.Product `json:"data"`
			TotalCount int              `json:"total_count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, 1, envelope.Data.TotalCount)
}

func TestClientEndpoints_AdminManagement(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/clients",
		map[string]any{"full_name": "Grace Hopper", "email": "grace@example.com", "phone": "+15550100"}, 1, "ADMIN")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Client
	decodeData(t, resp, &created)
	assert.Equal(t, "Grace Hopper", created.FullName)
	require.NotZero(t, created.ID)

	resp = env.do(t, http.MethodGet, "/api/v1/clients", nil, 1, "ADMIN")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var envelope struct {
		Data struct {
			Data       []domain.Client `json:"data"`
			TotalCount int             `json:"total_count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, 1, envelope.Data.TotalCount)

	resp = env.do(t, http.MethodDelete, "/api/v1/clients/"+strconv.FormatInt(created.ID, 10), nil, 1, "ADMIN")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, env.clients.clients)
}

func TestClientEndpoints_UserForbidden(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodGet, "/api/v1/clients", nil, 7, "USER")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/clients",
		map[string]any{"full_name": "Mallory", "email": "mallory@example.com"}, 7, "USER")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, env.clients.clients)
}

func TestClientEndpoints_CreateValidatesEmail(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/clients",
		map[string]any{"full_name": "No Email", "email": "not-an-email"}, 1, "ADMIN")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductEndpoints_AdminManagement(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/products",
		map[string]any{"name": "Desk", "price": 40000, "stock": 5}, 1, "ADMIN")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Product
	decodeData(t, resp, &created)
	assert.Equal(t, "Desk", created.Name)
	require.Len(t, env.catalog.products, 2)

	resp = env.do(t, http.MethodDelete, "/api/v1/products/"+strconv.FormatInt(created.ID, 10), nil, 1, "ADMIN")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, env.catalog.products, 1)
}

func TestProductEndpoints_UserCannotManage(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodPost, "/api/v1/products",
		map[string]any{"name": "Desk", "price": 40000}, 7, "USER")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/v1/products/1", nil, 7, "USER")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Len(t, env.catalog.products, 1)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t, domain.PolicyPermissive)

	resp := env.do(t, http.MethodGet, "/health/live", nil, 0, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/health/ready", nil, 0, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
