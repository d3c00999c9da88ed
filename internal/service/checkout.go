package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/repository"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/logger"
)

var (
	checkoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_checkouts_total",
			Help: "Checkout invocations by outcome",
		},
		[]string{"policy", "outcome"},
	)
	checkoutOrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_checkout_orders_total",
			Help: "Per-line order creation results during checkout",
		},
		[]string{"result"},
	)
)

// OrderCreator is the slice of the order gateway checkout needs.
type OrderCreator interface {
	Create(ctx context.Context, productID int64, quantity int, clientID int64) (*domain.Order, error)
}

// CheckoutEventPublisher emits the checkout.completed event. Best-effort;
// failures are logged, never surfaced.
type CheckoutEventPublisher interface {
	CheckoutCompleted(ctx context.Context, clientID int64, result *domain.CheckoutResult, policy string) error
}

// CheckoutService converts the cart into backend orders, one order-creation
// call per line, fanned out concurrently.
type CheckoutService struct {
	cart   *CartService
	orders OrderCreator
	policy string

	checkoutLog repository.CheckoutLogRepository
	events      CheckoutEventPublisher

	mu       sync.Mutex
	inFlight map[int64]bool
}

// NewCheckoutService creates the orchestrator. checkoutLog and events may be
// nil.
func NewCheckoutService(cart *CartService, orders OrderCreator, policy string, checkoutLog repository.CheckoutLogRepository, events CheckoutEventPublisher) *CheckoutService {
	return &CheckoutService{
		cart:        cart,
		orders:      orders,
		policy:      policy,
		checkoutLog: checkoutLog,
		events:      events,
		inFlight:    make(map[int64]bool),
	}
}

// ErrCheckoutInFlight rejects re-entrant checkouts for the same user.
var ErrCheckoutInFlight = &apperrors.AppError{
	Code:    "CHECKOUT_IN_FLIGHT",
	Message: "a checkout is already in progress",
	Status:  http.StatusConflict,
	Err:     apperrors.ErrConflict,
}

func checkoutFailed(succeeded, attempted int) error {
	return &apperrors.AppError{
		Code:    "CHECKOUT_FAILED",
		Message: fmt.Sprintf("order creation failed (%d of %d succeeded)", succeeded, attempted),
		Status:  http.StatusBadGateway,
		Err:     apperrors.ErrUnavailable,
	}
}

// Checkout runs the full fan-out for the acting user. On a successful outcome
// the cart is cleared and the result carries the created orders; on a failed
// outcome the cart is left intact and an error is returned alongside the
// per-line counts.
func (s *CheckoutService) Checkout(ctx context.Context, identity domain.Identity) (*domain.CheckoutResult, error) {
	if !identity.IsAuthenticated() {
		return nil, apperrors.Unauthorized("checkout requires an authenticated user")
	}
	if !identity.Can(domain.CapCheckout) {
		return nil, apperrors.Forbidden("checkout is not available for this role")
	}

	cart, err := s.cart.Get(ctx, identity.ActorID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartEntry, 0, len(cart.Entries))
	for _, e := range cart.Entries {
		if e.ProductID != 0 {
			items = append(items, e)
		}
	}
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("cart has no orderable entries")
	}

	if !s.acquire(identity.ActorID) {
		return nil, ErrCheckoutInFlight
	}
	defer s.release(identity.ActorID)

	result := s.fanOut(ctx, identity.ActorID, items)

	log := logger.FromContext(ctx)
	switch {
	case result.AllSucceeded():
		checkoutsTotal.WithLabelValues(s.policy, "success").Inc()
	case result.Succeeded > 0:
		checkoutsTotal.WithLabelValues(s.policy, "partial").Inc()
	default:
		checkoutsTotal.WithLabelValues(s.policy, "failure").Inc()
	}

	// Clear never fails: the in-memory cart is dropped synchronously and the
	// snapshot delete is best-effort inside CartService.
	if result.AllSucceeded() || (s.policy == domain.PolicyPermissive && result.Succeeded > 0) {
		_ = s.cart.Clear(ctx, identity.ActorID)
		result.CartCleared = true
	}

	s.record(ctx, identity.ActorID, result)

	log.Info("checkout completed",
		slog.Int64("client_id", identity.ActorID),
		slog.String("policy", s.policy),
		slog.Int("attempted", result.Attempted),
		slog.Int("succeeded", result.Succeeded),
		slog.Bool("cart_cleared", result.CartCleared),
	)

	if !result.CartCleared {
		return result, checkoutFailed(result.Succeeded, result.Attempted)
	}
	return result, nil
}

// fanOut issues one order-creation call per line concurrently and joins on
// all of them. A failed line never cancels its siblings.
func (s *CheckoutService) fanOut(ctx context.Context, clientID int64, items []domain.CartEntry) *domain.CheckoutResult {
	type lineResult struct {
		order *domain.Order
		err   error
	}

	results := make([]lineResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item domain.CartEntry) {
			defer wg.Done()
			order, err := s.orders.Create(ctx, item.ProductID, item.Quantity, clientID)
			results[i] = lineResult{order: order, err: err}
		}(i, item)
	}
	wg.Wait()

	result := &domain.CheckoutResult{Attempted: len(items)}
	log := logger.FromContext(ctx)
	for i, r := range results {
		if r.err != nil {
			checkoutOrdersTotal.WithLabelValues("failure").Inc()
			result.FailedItems = append(result.FailedItems, items[i])
			log.Warn("order creation failed",
				slog.Int64("product_id", items[i].ProductID),
				slog.String("error", r.err.Error()),
			)
			continue
		}
		checkoutOrdersTotal.WithLabelValues("success").Inc()
		result.Succeeded++
		result.Orders = append(result.Orders, *r.order)
	}
	return result
}

// record persists the activity row and emits the event, both best-effort.
func (s *CheckoutService) record(ctx context.Context, clientID int64, result *domain.CheckoutResult) {
	log := logger.FromContext(ctx)

	if s.checkoutLog != nil {
		rec := &domain.CheckoutRecord{
			ClientID:  clientID,
			Attempted: result.Attempted,
			Succeeded: result.Succeeded,
			Policy:    s.policy,
		}
		if err := s.checkoutLog.Record(ctx, rec); err != nil {
			log.Warn("checkout record write failed", slog.String("error", err.Error()))
		}
	}

	if s.events != nil {
		if err := s.events.CheckoutCompleted(ctx, clientID, result, s.policy); err != nil {
			log.Warn("checkout event publish failed", slog.String("error", err.Error()))
		}
	}
}

// History returns the client's recent checkout activity, newest first.
func (s *CheckoutService) History(ctx context.Context, clientID int64, limit int) ([]domain.CheckoutRecord, error) {
	if s.checkoutLog == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.checkoutLog.ListByClient(ctx, clientID, limit)
}

func (s *CheckoutService) acquire(clientID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[clientID] {
		return false
	}
	s.inFlight[clientID] = true
	return true
}

func (s *CheckoutService) release(clientID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, clientID)
}
