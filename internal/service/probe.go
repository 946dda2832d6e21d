package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"sori/internal/domain/services"
)

// HTTPHealthProber checks a server by requesting <baseURL>/health once.
// Anything but a 200 response counts as unreachable.
type HTTPHealthProber struct {
	client *http.Client
	logger *slog.Logger
}

// NewHealthProber creates a prober; a nil client means http.DefaultClient
func NewHealthProber(client *http.Client, logger *slog.Logger) *HTTPHealthProber {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPHealthProber{client: client, logger: logger}
}

// Probe returns services.ErrServerUnreachable wrapping the cause of failure
func (p *HTTPHealthProber) Probe(ctx context.Context, baseURL string) error {
	target := strings.TrimRight(baseURL, "/") + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrServerUnreachable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("server probe failed", "url", target, "error", err)
		return fmt.Errorf("%w: %v", services.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug("server probe rejected", "url", target, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", services.ErrServerUnreachable, resp.StatusCode)
	}
	return nil
}
