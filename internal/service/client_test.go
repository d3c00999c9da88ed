package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
)

type mockClientManager struct {
	mock.Mock
}

func (m *mockClientManager) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *mockClientManager) Create(ctx context.Context, client domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientManager) Delete(ctx context.Context, clientID int64) error {
	return m.Called(ctx, clientID).Error(0)
}

func TestClientList_AdminOnly(t *testing.T) {
	clients := &mockClientManager{}
	svc := NewClientService(clients)

	_, err := svc.List(context.Background(), userIdentity(7))
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	clients.AssertNotCalled(t, "List", mock.Anything)
}

func TestClientList_ReturnsClients(t *testing.T) {
	clients := &mockClientManager{}
	clients.On("List", mock.Anything).Return([]domain.Client{
		{ID: 1, FullName: "Ada Lovelace", Email: "ada@example.com"},
	}, nil)

	svc := NewClientService(clients)
	got, err := svc.List(context.Background(), adminIdentity())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ada@example.com", got[0].Email)
}

func TestClientCreate_AdminOnly(t *testing.T) {
	clients := &mockClientManager{}
	svc := NewClientService(clients)

	_, err := svc.Create(context.Background(), userIdentity(7), domain.Client{FullName: "Mallory", Email: "mallory@example.com"})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	clients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientCreate_Succeeds(t *testing.T) {
	clients := &mockClientManager{}
	clients.On("Create", mock.Anything, domain.Client{FullName: "Grace Hopper", Email: "grace@example.com"}).
		Return(&domain.Client{ID: 3, FullName: "Grace Hopper", Email: "grace@example.com"}, nil)

	svc := NewClientService(clients)
	created, err := svc.Create(context.Background(), adminIdentity(), domain.Client{FullName: "Grace Hopper", Email: "grace@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestClientDelete_AdminOnly(t *testing.T) {
	svc := NewClientService(&mockClientManager{})

	err := svc.Delete(context.Background(), userIdentity(7), 3)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestClientDelete_PropagatesDownstreamError(t *testing.T) {
	clients := &mockClientManager{}
	clients.On("Delete", mock.Anything, int64(999)).Return(apperrors.NotFound("client", "999"))

	svc := NewClientService(clients)
	err := svc.Delete(context.Background(), adminIdentity(), 999)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
