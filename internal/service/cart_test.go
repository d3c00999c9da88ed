package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memorySnapshots is an in-memory snapshot store with switchable failures.
type memorySnapshots struct {
	mu         sync.Mutex
	data       map[int64]*domain.Cart
	failSave   bool
	failGet    bool
	failDelete bool
	saves      int
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{data: make(map[int64]*domain.Cart)}
}

func (m *memorySnapshots) Get(_ context.Context, userID int64) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errors.New("storage unavailable")
	}
	c, ok := m.data[userID]
	if !ok {
		return nil, apperrors.NotFound("cart snapshot", "")
	}
	cp := *c
	return &cp, nil
}

func (m *memorySnapshots) Save(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.failSave {
		return errors.New("storage unavailable")
	}
	cp := *cart
	m.data[cart.UserID] = &cp
	return nil
}

func (m *memorySnapshots) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errors.New("storage unavailable")
	}
	delete(m.data, userID)
	return nil
}

func newCartService(snaps *memorySnapshots) *CartService {
	return NewCartService(snaps, domain.DefaultShippingPolicy(), discardLogger())
}

func TestCartService_AddItemMergesLines(t *testing.T) {
	svc := newCartService(newMemorySnapshots())
	ctx := context.Background()
	product := domain.Product{ID: 1, Name: "Mouse", Price: 12000}

	_, err := svc.AddItem(ctx, 7, product)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, 7, product)
	require.NoError(t, err)

	require.Len(t, cart.Entries, 1)
	assert.Equal(t, 2, cart.Entries[0].Quantity)
	assert.Equal(t, 2, cart.ItemCount())
}

func TestCartService_AddItemRequiresProductID(t *testing.T) {
	svc := newCartService(newMemorySnapshots())

	_, err := svc.AddItem(context.Background(), 7, domain.Product{Name: "ghost"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCartService_RemoveAbsentIsNoop(t *testing.T) {
	svc := newCartService(newMemorySnapshots())

	cart, err := svc.RemoveItem(context.Background(), 7, 999)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
}

func TestCartService_SetQuantityZeroRemoves(t *testing.T) {
	svc := newCartService(newMemorySnapshots())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, domain.Product{ID: 1, Price: 100})
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, 7, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
}

func TestCartService_DecrementToZeroRemoves(t *testing.T) {
	svc := newCartService(newMemorySnapshots())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, domain.Product{ID: 1, Price: 100})
	require.NoError(t, err)
	_, err = svc.Increment(ctx, 7, 1)
	require.NoError(t, err)

	cart, err := svc.Decrement(ctx, 7, 1)
	require.NoError(t, err)
	require.Len(t, cart.Entries, 1)
	assert.Equal(t, 1, cart.Entries[0].Quantity)

	cart, err = svc.Decrement(ctx, 7, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
}

func TestCartService_TotalsShippingThreshold(t *testing.T) {
	svc := newCartService(newMemorySnapshots())
	ctx := context.Background()

	// 120*2 + 300 = 540 > 500: free shipping
	_, err := svc.AddItem(ctx, 7, domain.Product{ID: 1, Name: "Mouse", Price: 120})
	require.NoError(t, err)
	_, err = svc.Increment(ctx, 7, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 7, domain.Product{ID: 2, Name: "Keyboard", Price: 300})
	require.NoError(t, err)

	policy := domain.ShippingPolicy{FreeThreshold: 500, FlatFee: 50}
	cart, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	totals := cart.Totals(policy)
	assert.Equal(t, int64(540), totals.Subtotal)
	assert.Equal(t, int64(0), totals.ShippingCost)
	assert.Equal(t, int64(540), totals.Total)

	// 100*2 = 200 <= 500: flat fee applies
	_, err = svc.AddItem(ctx, 8, domain.Product{ID: 3, Price: 100})
	require.NoError(t, err)
	_, err = svc.Increment(ctx, 8, 3)
	require.NoError(t, err)

	cart, err = svc.Get(ctx, 8)
	require.NoError(t, err)
	totals = cart.Totals(policy)
	assert.Equal(t, int64(200), totals.Subtotal)
	assert.Equal(t, int64(50), totals.ShippingCost)
	assert.Equal(t, int64(250), totals.Total)
}

func TestCartService_SubtotalExactlyAtThresholdPaysFee(t *testing.T) {
	policy := domain.ShippingPolicy{FreeThreshold: 500, FlatFee: 50}
	cart := &domain.Cart{Entries: []domain.CartEntry{{ProductID: 1, UnitPrice: 500, Quantity: 1}}}

	totals := cart.Totals(policy)
	assert.Equal(t, int64(50), totals.ShippingCost)
	assert.Equal(t, int64(550), totals.Total)
}

func TestCartService_PersistenceFailureNeverBlocksMutation(t *testing.T) {
	snaps := newMemorySnapshots()
	snaps.failSave = true
	svc := newCartService(snaps)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, 7, domain.Product{ID: 1, Price: 100})
	require.NoError(t, err)
	require.Len(t, cart.Entries, 1)

	cart, err = svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, cart.Entries, 1)
	assert.Positive(t, snaps.saves)
}

func TestCartService_UnreadableSnapshotStartsEmpty(t *testing.T) {
	snaps := newMemorySnapshots()
	snaps.failGet = true
	svc := newCartService(snaps)

	cart, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
}

func TestCartService_SnapshotRestoredOnFirstAccess(t *testing.T) {
	snaps := newMemorySnapshots()
	snaps.data[7] = &domain.Cart{
		UserID:  7,
		Entries: []domain.CartEntry{{ProductID: 5, Name: "Desk", UnitPrice: 40000, Quantity: 1}},
	}
	svc := newCartService(snaps)

	cart, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cart.Entries, 1)
	assert.Equal(t, int64(5), cart.Entries[0].ProductID)
}

func TestCartService_ClearEmptiesAndDeletesSnapshot(t *testing.T) {
	snaps := newMemorySnapshots()
	svc := newCartService(snaps)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, domain.Product{ID: 1, Price: 100})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, 7))

	cart, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
	assert.NotContains(t, snaps.data, int64(7))
}

func TestCartService_GetReturnsCopy(t *testing.T) {
	svc := newCartService(newMemorySnapshots())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, domain.Product{ID: 1, Price: 100})
	require.NoError(t, err)

	cart, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	cart.Entries[0].Quantity = 99

	fresh, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Entries[0].Quantity)
}
