package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/repository"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/logger"
)

// CartService maintains the authoritative in-memory cart per user and mirrors
// every mutation to the snapshot store. Snapshot failures are logged and
// swallowed; the in-memory cart stays usable either way.
type CartService struct {
	mu        sync.Mutex
	carts     map[int64]*domain.Cart
	loaded    map[int64]bool
	snapshots repository.CartSnapshotRepository
	policy    domain.ShippingPolicy
	log       *slog.Logger
}

// NewCartService creates the cart store. snapshots may be nil, in which case
// carts live in memory only.
func NewCartService(snapshots repository.CartSnapshotRepository, policy domain.ShippingPolicy, log *slog.Logger) *CartService {
	return &CartService{
		carts:     make(map[int64]*domain.Cart),
		loaded:    make(map[int64]bool),
		snapshots: snapshots,
		policy:    policy,
		log:       log,
	}
}

// cart returns the live cart for a user, loading the snapshot on first
// access. A missing or unreadable snapshot yields an empty cart. Caller must
// hold s.mu.
func (s *CartService) cart(ctx context.Context, userID int64) *domain.Cart {
	if c, ok := s.carts[userID]; ok {
		return c
	}

	c := &domain.Cart{UserID: userID}
	if s.snapshots != nil && !s.loaded[userID] {
		snap, err := s.snapshots.Get(ctx, userID)
		switch {
		case err == nil:
			snap.UserID = userID
			c = snap
		case errors.Is(err, apperrors.ErrNotFound):
			// first visit, nothing to restore
		default:
			logger.WithContext(ctx, s.log).Warn("cart snapshot load failed, starting empty",
				slog.Int64("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}
	s.loaded[userID] = true
	s.carts[userID] = c
	return c
}

// persist mirrors the cart to the snapshot store, logging failures.
func (s *CartService) persist(ctx context.Context, c *domain.Cart) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, c); err != nil {
		logger.WithContext(ctx, s.log).Warn("cart snapshot save failed",
			slog.Int64("user_id", c.UserID),
			slog.String("error", err.Error()),
		)
	}
}

// AddItem adds one unit of the product, merging with an existing line.
func (s *CartService) AddItem(ctx context.Context, userID int64, product domain.Product) (*domain.Cart, error) {
	if product.ID == 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	if i := c.EntryIndex(product.ID); i >= 0 {
		c.Entries[i].Quantity++
	} else {
		c.Entries = append(c.Entries, domain.CartEntry{
			ProductID:   product.ID,
			Name:        product.Name,
			Description: product.Description,
			UnitPrice:   product.Price,
			Quantity:    1,
		})
	}
	c.UpdatedAt = time.Now().UTC()
	s.persist(ctx, c)
	return copyCart(c), nil
}

// RemoveItem deletes the line for a product. Removing an absent product is a
// no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	if i := c.EntryIndex(productID); i >= 0 {
		c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
		c.UpdatedAt = time.Now().UTC()
		s.persist(ctx, c)
	}
	return copyCart(c), nil
}

// SetQuantity replaces a line's quantity. Zero or negative removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID int64, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	i := c.EntryIndex(productID)
	if i < 0 {
		return nil, apperrors.NotFound("cart entry", "")
	}
	c.Entries[i].Quantity = quantity
	c.UpdatedAt = time.Now().UTC()
	s.persist(ctx, c)
	return copyCart(c), nil
}

// Increment adds one unit to an existing line.
func (s *CartService) Increment(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	i := c.EntryIndex(productID)
	if i < 0 {
		return nil, apperrors.NotFound("cart entry", "")
	}
	c.Entries[i].Quantity++
	c.UpdatedAt = time.Now().UTC()
	s.persist(ctx, c)
	return copyCart(c), nil
}

// Decrement removes one unit from a line; a quantity-1 line is deleted.
func (s *CartService) Decrement(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	i := c.EntryIndex(productID)
	if i < 0 {
		return nil, apperrors.NotFound("cart entry", "")
	}
	if c.Entries[i].Quantity <= 1 {
		c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
	} else {
		c.Entries[i].Quantity--
	}
	c.UpdatedAt = time.Now().UTC()
	s.persist(ctx, c)
	return copyCart(c), nil
}

// Clear empties the cart and removes the snapshot.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	c.Entries = nil
	c.UpdatedAt = time.Now().UTC()

	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctx, userID); err != nil {
			logger.WithContext(ctx, s.log).Warn("cart snapshot delete failed",
				slog.Int64("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// Get returns a copy of the user's cart.
func (s *CartService) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cart(ctx, userID)), nil
}

// Totals computes the derived cart summary.
func (s *CartService) Totals(ctx context.Context, userID int64) (domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(ctx, userID).Totals(s.policy), nil
}

// ShippingPolicy returns the configured shipping policy.
func (s *CartService) ShippingPolicy() domain.ShippingPolicy {
	return s.policy
}

func copyCart(c *domain.Cart) *domain.Cart {
	out := &domain.Cart{UserID: c.UserID, UpdatedAt: c.UpdatedAt}
	if len(c.Entries) > 0 {
		out.Entries = make([]domain.CartEntry, len(c.Entries))
		copy(out.Entries, c.Entries)
	}
	return out
}
