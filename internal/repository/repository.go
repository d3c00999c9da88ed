package repository

import (
	"context"

	"github.com/storefrontgo/dashboard/internal/domain"
)

// CartSnapshotRepository persists cart snapshots in a durable key-value
// store. The in-memory cart store treats it as best-effort: a failing
// snapshot write never blocks a cart mutation.
type CartSnapshotRepository interface {
	// Get retrieves the snapshot for a user. Returns errors.ErrNotFound
	// when no snapshot exists.
	Get(ctx context.Context, userID int64) (*domain.Cart, error)

	// Save overwrites the snapshot for the cart's user.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the snapshot for a user.
	Delete(ctx context.Context, userID int64) error
}

// CheckoutLogRepository records checkout outcomes for the activity history.
type CheckoutLogRepository interface {
	// Record appends one checkout outcome.
	Record(ctx context.Context, rec *domain.CheckoutRecord) error

	// ListByClient returns the most recent records for a client, newest
	// first, capped at limit.
	ListByClient(ctx context.Context, clientID int64, limit int) ([]domain.CheckoutRecord, error)
}
