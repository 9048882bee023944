package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"accounthub/internal/envelope"
)

// ErrUnavailable marks transport failures: the downstream did not
// answer within the timeout or could not be reached at all. Callers
// treat it differently from a definite business rejection.
var ErrUnavailable = errors.New("service unavailable")

const DefaultCallTimeout = 5 * time.Second

// ServiceClient sends command messages to one downstream service with
// fire-and-wait-with-timeout semantics: a single fixed-duration wait
// per call, no retry.
type ServiceClient struct {
	name    string
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

func NewServiceClient(name, baseURL string, timeout time.Duration, log *zap.SugaredLogger) *ServiceClient {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ServiceClient{
		name:    name,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Name returns the downstream service name (used in error messages).
func (c *ServiceClient) Name() string {
	return c.name
}

// Send performs one command round trip. A non-nil ServiceResponse is
// returned whenever the downstream answered, whatever the business
// outcome; ErrUnavailable covers everything else.
func (c *ServiceClient) Send(ctx context.Context, cmd string, payload any) (*envelope.ServiceResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", cmd, err)
	}
	body, err := json.Marshal(Message{Cmd: cmd, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal %s message: %w", cmd, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("downstream call failed", "service", c.name, "cmd", cmd, "err", err)
		return nil, fmt.Errorf("%s %s: %w", c.name, cmd, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warnw("downstream returned unexpected status", "service", c.name, "cmd", cmd, "status", resp.StatusCode)
		return nil, fmt.Errorf("%s %s: status %d: %w", c.name, cmd, resp.StatusCode, ErrUnavailable)
	}

	var sr envelope.ServiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", c.name, cmd, ErrUnavailable)
	}
	return &sr, nil
}

// Close releases pooled connections; part of the explicit client
// lifecycle owned by the app wiring.
func (c *ServiceClient) Close() {
	c.http.CloseIdleConnections()
}
