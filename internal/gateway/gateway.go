// Package gateway holds typed clients for the storefront microservices the
// dashboard aggregates. Each gateway owns one base URL and translates
// downstream error envelopes into AppErrors.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Doer executes an outbound HTTP request. Both httpclient.Client and
// httpclient.BreakerClient satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// decodeBody decodes a 2xx response body into target and closes the body.
func decodeBody(resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
