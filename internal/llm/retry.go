package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"admit-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base  Client
	label string
}

// NewRetrying wraps a client with a single retry for transient failures.
func NewRetrying(base Client, label string) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, label: label}
}

func (r retryingClient) Complete(ctx context.Context, req Request) (Completion, error) {
	resp, err := r.base.Complete(ctx, req)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Info("llm.retry", map[string]any{
		"backend": r.label,
		"attempt": 1,
		"error":   err.Error(),
	})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return Completion{}, ctx.Err()
	}

	return r.base.Complete(ctx, req)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
