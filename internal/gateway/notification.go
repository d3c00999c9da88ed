package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/pkg/httpclient"
)

const notificationServiceName = "notification-service"

// NotificationGateway calls the notification service.
type NotificationGateway struct {
	client  Doer
	baseURL string
}

// NewNotificationGateway creates a notification service client.
func NewNotificationGateway(client Doer, baseURL string) *NotificationGateway {
	return &NotificationGateway{client: client, baseURL: baseURL}
}

// List fetches the notification feed.
func (g *NotificationGateway) List(ctx context.Context) ([]domain.Notification, error) {
	endpoint := joinURL(g.baseURL, "/api/notifications")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create list notifications request: %w", err)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call notification service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, notificationServiceName)
	}

	var notifications []domain.Notification
	if err := decodeBody(resp, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
