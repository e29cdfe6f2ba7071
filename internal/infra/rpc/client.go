// Package rpc issues JSON-RPC 2.0 probes against Solana-style node
// endpoints. Probe failures are expected steady-state conditions (nodes go
// down, networks flake), so they are reported as result values rather than
// errors: callers always get an answer for every host.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	methodGetHealth = "getHealth"
	methodGetSlot   = "getSlot"
)

// HealthResult is the outcome of a getHealth probe. Slot is populated when
// the node includes a numeric result alongside its health answer.
type HealthResult struct {
	Healthy bool
	Slot    uint64
	HasSlot bool
}

// Client probes node RPC endpoints over HTTP.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a probe client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: slog.Default(),
	}
}

type rpcEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *map[string]any `json:"error"`
}

func (c *Client) call(ctx context.Context, url, method string) (*rpcEnvelope, error) {
	reqBody := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var env rpcEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &env, nil
}

// Health probes url with getHealth. The node is healthy iff the call
// succeeds over HTTP and the response carries no top-level error object.
func (c *Client) Health(ctx context.Context, url string) HealthResult {
	env, err := c.call(ctx, url, methodGetHealth)
	if err != nil {
		c.log.Error("Health probe failed", "url", url, "error", err)
		return HealthResult{}
	}

	if env.Error != nil {
		c.log.Error("Health probe returned RPC error", "url", url, "rpc_error", *env.Error)
		return HealthResult{}
	}

	res := HealthResult{Healthy: true}
	if len(env.Result) > 0 {
		var slot uint64
		if err := json.Unmarshal(env.Result, &slot); err == nil {
			res.Slot = slot
			res.HasSlot = true
		}
	}

	return res
}

// Slot probes url with getSlot and extracts the numeric result. The second
// return is false when no slot could be observed this cycle.
func (c *Client) Slot(ctx context.Context, url string) (uint64, bool) {
	env, err := c.call(ctx, url, methodGetSlot)
	if err != nil {
		c.log.Error("Slot probe failed", "url", url, "error", err)
		return 0, false
	}

	if env.Error != nil {
		c.log.Error("Slot probe returned RPC error", "url", url, "rpc_error", *env.Error)
		return 0, false
	}

	if len(env.Result) == 0 || bytes.Equal(bytes.TrimSpace(env.Result), []byte("null")) {
		c.log.Error("Slot probe response missing result", "url", url)
		return 0, false
	}

	var slot uint64
	if err := json.Unmarshal(env.Result, &slot); err != nil {
		c.log.Error("Slot probe result malformed", "url", url, "result", string(env.Result))
		return 0, false
	}

	return slot, true
}
