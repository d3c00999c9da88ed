package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storefrontgo/dashboard/internal/domain"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CheckoutLogRepository persists checkout outcomes in Postgres.
type CheckoutLogRepository struct {
	db Querier
}

// NewCheckoutLogRepository creates a Postgres-backed checkout log.
func NewCheckoutLogRepository(db Querier) *CheckoutLogRepository {
	return &CheckoutLogRepository{db: db}
}

// Record appends one checkout outcome and fills in the generated id and
// timestamp.
func (r *CheckoutLogRepository) Record(ctx context.Context, rec *domain.CheckoutRecord) error {
	const q = `
		INSERT INTO checkout_log (client_id, attempted, succeeded, policy)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, q, rec.ClientID, rec.Attempted, rec.Succeeded, rec.Policy).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert checkout record: %w", err)
	}

	return nil
}

// ListByClient returns the most recent checkout records for a client, newest
// first.
func (r *CheckoutLogRepository) ListByClient(ctx context.Context, clientID int64, limit int) ([]domain.CheckoutRecord, error) {
	const q = `
		SELECT id, client_id, attempted, succeeded, policy, created_at
		FROM checkout_log
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, q, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("query checkout records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.CheckoutRecord, 0, limit)
	for rows.Next() {
		var rec domain.CheckoutRecord
		if err := rows.Scan(&rec.ID, &rec.ClientID, &rec.Attempted, &rec.Succeeded, &rec.Policy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan checkout record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkout records: %w", err)
	}

	return records, nil
}
