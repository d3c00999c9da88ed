package service

import (
	"context"
	"log/slog"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/logger"
)

// OrderManager is the slice of the order gateway the order views need.
type OrderManager interface {
	List(ctx context.Context) ([]domain.Order, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error)
	Delete(ctx context.Context, orderID int64) error
}

// OrderService serves the order read models and admin order management.
type OrderService struct {
	orders OrderManager
}

// NewOrderService creates the order service.
func NewOrderService(orders OrderManager) *OrderService {
	return &OrderService{orders: orders}
}

// List returns the orders visible to the identity. Admins see every order;
// users see only their own.
func (s *OrderService) List(ctx context.Context, identity domain.Identity) ([]domain.Order, error) {
	if identity.Can(domain.CapViewAllOrders) {
		return s.orders.List(ctx)
	}
	if !identity.IsAuthenticated() {
		return nil, apperrors.Unauthorized("order list requires an authenticated user")
	}
	return s.orders.ListByClient(ctx, identity.ActorID)
}

// UpdateStatus transitions an order. Admin only.
func (s *OrderService) UpdateStatus(ctx context.Context, identity domain.Identity, orderID int64, status string) (*domain.Order, error) {
	if !identity.Can(domain.CapManageOrders) {
		return nil, apperrors.Forbidden("order management requires the admin role")
	}
	if !domain.ValidOrderStatus(status) {
		return nil, apperrors.InvalidInput("unknown order status: " + status)
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("order status updated",
		slog.Int64("order_id", orderID),
		slog.String("status", status),
	)
	return order, nil
}

// Delete removes an order. Admin only.
func (s *OrderService) Delete(ctx context.Context, identity domain.Identity, orderID int64) error {
	if !identity.Can(domain.CapManageOrders) {
		return apperrors.Forbidden("order management requires the admin role")
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("order deleted", slog.Int64("order_id", orderID))
	return nil
}
