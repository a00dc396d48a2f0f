// Package api provides the storefront REST API client and the domain
// repositories built on it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"storefront-go/core/outcome"
	"storefront-go/infrastructure/logging"
)

// Client performs JSON requests against the storefront API.
type Client interface {
	// Do sends in as the JSON body (nil for none) and decodes the response
	// into out (nil to discard). Failures wrap outcome.ErrOffline,
	// outcome.ErrUnauthorized or *outcome.StatusError.
	Do(ctx context.Context, method, path string, in, out any) error

	// IsHealthy returns true if the API answered the last probe.
	IsHealthy() bool

	// Close releases resources.
	Close()
}

// ClientConfig contains configuration for the API client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// HealthPath is probed every HealthInterval. Zero interval disables
	// the background probe.
	HealthPath     string
	HealthInterval time.Duration
	HealthTimeout  time.Duration
	Logger         *slog.Logger
}

// DefaultClientConfig returns default API client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:        "http://localhost:8080",
		Timeout:        10 * time.Second,
		HealthPath:     "/api/v1/session",
		HealthInterval: 15 * time.Second,
		HealthTimeout:  3 * time.Second,
	}
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	config       *ClientConfig
	httpClient   *http.Client
	logger       *slog.Logger
	healthy      atomic.Bool
	healthCtx    context.Context
	healthCancel context.CancelFunc
	healthWg     sync.WaitGroup
}

// NewHTTPClient creates a new API client. Session cookies are kept in a
// jar, which the browser's fetch transport manages on its own under wasm.
func NewHTTPClient(config *ClientConfig) *HTTPClient {
	if config == nil {
		config = DefaultClientConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	jar, _ := cookiejar.New(nil)
	ctx, cancel := context.WithCancel(context.Background())

	client := &HTTPClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Jar:     jar,
		},
		logger:       logger.With("component", "api"),
		healthCtx:    ctx,
		healthCancel: cancel,
	}
	client.healthy.Store(true)

	if config.HealthInterval > 0 {
		client.performHealthCheck()

		client.healthWg.Add(1)
		go client.healthCheckLoop()
	}

	return client
}

// Do executes one JSON request. Failures are logged at debug level with the
// logger carried by ctx.
func (c *HTTPClient) Do(ctx context.Context, method, path string, in, out any) error {
	err := c.do(ctx, method, path, in, out)
	if err != nil {
		logging.From(ctx).Debug("API request failed",
			"method", method, "path", path, "outcome", outcome.Of(err), "error", err)
	}
	return err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		c.setHealthy(false)
		return fmt.Errorf("%s %s: %w: %w", method, path, outcome.ErrOffline, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch outcome.FromStatus(resp.StatusCode) {
	case outcome.Success:
		c.setHealthy(true)
	case outcome.Unauthorized:
		c.setHealthy(true)
		return fmt.Errorf("%s %s: %w", method, path, outcome.ErrUnauthorized)
	case outcome.Offline:
		c.setHealthy(false)
		return fmt.Errorf("%s %s: %w: %w", method, path, outcome.ErrOffline, statusError(resp.StatusCode, data))
	default:
		c.setHealthy(true)
		return fmt.Errorf("%s %s: %w", method, path, statusError(resp.StatusCode, data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func statusError(code int, body []byte) *outcome.StatusError {
	text := strings.TrimSpace(string(body))
	if len(text) > 256 {
		text = text[:256]
	}
	return &outcome.StatusError{Code: code, Body: text}
}

func (c *HTTPClient) url(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}

// IsHealthy returns true if the API answered the last request or probe.
func (c *HTTPClient) IsHealthy() bool {
	return c.healthy.Load()
}

func (c *HTTPClient) setHealthy(v bool) {
	if c.healthy.Swap(v) != v {
		c.logger.Info("api reachability changed", "healthy", v)
	}
}

// Close stops the health probe.
func (c *HTTPClient) Close() {
	if c.healthCancel != nil {
		c.healthCancel()
	}
	c.healthWg.Wait()
}

func (c *HTTPClient) healthCheckLoop() {
	defer c.healthWg.Done()

	ticker := time.NewTicker(c.config.HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.healthCtx.Done():
			return
		case <-ticker.C:
			c.performHealthCheck()
		}
	}
}

func (c *HTTPClient) performHealthCheck() {
	ctx, cancel := context.WithTimeout(c.healthCtx, c.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(c.config.HealthPath), nil)
	if err != nil {
		c.setHealthy(false)
		return
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(c.healthCtx.Err(), context.Canceled) {
			return
		}
		c.setHealthy(false)
		return
	}
	defer resp.Body.Close()

	c.setHealthy(outcome.FromStatus(resp.StatusCode) != outcome.Offline)
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// NoOpClient answers every request as offline. The storefront uses it when
// no API base URL is configured.
type NoOpClient struct{}

// NewNoOpClient creates a no-operation API client.
func NewNoOpClient() *NoOpClient {
	return &NoOpClient{}
}

func (c *NoOpClient) Do(ctx context.Context, method, path string, in, out any) error {
	return fmt.Errorf("%s %s: %w", method, path, outcome.ErrOffline)
}

func (c *NoOpClient) IsHealthy() bool {
	return false
}

func (c *NoOpClient) Close() {}

var _ Client = (*NoOpClient)(nil)
