package service

import (
	"context"
	"log/slog"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/logger"
)

// ClientManager is the slice of the client gateway the clients panel needs.
type ClientManager interface {
	List(ctx context.Context) ([]domain.Client, error)
	Create(ctx context.Context, client domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, clientID int64) error
}

// ClientService serves the admin clients panel. Every operation is gated on
// the client-management capability.
type ClientService struct {
	clients ClientManager
}

// NewClientService creates the client service.
func NewClientService(clients ClientManager) *ClientService {
	return &ClientService{clients: clients}
}

// List returns every registered client. Admin only.
func (s *ClientService) List(ctx context.Context, identity domain.Identity) ([]domain.Client, error) {
	if !identity.Can(domain.CapManageClients) {
		return nil, apperrors.Forbidden("client management requires the admin role")
	}
	return s.clients.List(ctx)
}

// Create registers a new client. Admin only.
func (s *ClientService) Create(ctx context.Context, identity domain.Identity, client domain.Client) (*domain.Client, error) {
	if !identity.Can(domain.CapManageClients) {
		return nil, apperrors.Forbidden("client management requires the admin role")
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("client registered",
		slog.Int64("client_id", created.ID),
		slog.String("email", created.Email),
	)
	return created, nil
}

// Delete removes a client. Admin only.
func (s *ClientService) Delete(ctx context.Context, identity domain.Identity, clientID int64) error {
	if !identity.Can(domain.CapManageClients) {
		return apperrors.Forbidden("client management requires the admin role")
	}
	if err := s.clients.Delete(ctx, clientID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("client removed", slog.Int64("client_id", clientID))
	return nil
}
