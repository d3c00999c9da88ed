package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
)

const keyPrefix = "dashboard:cart:"

// CartSnapshotRepository implements repository.CartSnapshotRepository on
// Redis. Snapshots are stored as JSON with a TTL so abandoned carts expire.
type CartSnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartSnapshotRepository creates a Redis-backed snapshot repository.
func NewCartSnapshotRepository(client *redis.Client, ttl time.Duration) *CartSnapshotRepository {
	return &CartSnapshotRepository{client: client, ttl: ttl}
}

func cartKey(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Get retrieves a cart snapshot by user id.
func (r *CartSnapshotRepository) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart snapshot", strconv.FormatInt(userID, 10))
		}
		return nil, fmt.Errorf("redis get cart snapshot: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}

	return &cart, nil
}

// Save persists a cart snapshot with the configured TTL.
func (r *CartSnapshotRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart snapshot: %w", err)
	}

	return nil
}

// Delete removes a cart snapshot by user id.
func (r *CartSnapshotRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del cart snapshot: %w", err)
	}
	return nil
}
