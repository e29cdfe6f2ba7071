// Package heartbeat probes node health and forwards dead-man's-switch pings
// for nodes that answer.
package heartbeat

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Forwarder pings dead-man's-switch endpoints over plain HTTP GET.
type Forwarder struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewForwarder creates a forwarder with the given per-request timeout.
func NewForwarder(timeout time.Duration) *Forwarder {
	return &Forwarder{
		httpClient: &http.Client{Timeout: timeout},
		log:        slog.Default(),
	}
}

// Ping issues a GET against url. Failures are logged and absorbed: a missed
// ping is itself the signal the dead-man's-switch service watches for, so
// there is nothing useful to propagate.
func (f *Forwarder) Ping(ctx context.Context, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.log.Error("Heartbeat request build failed", "url", url, "error", err)
		return
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Error("Heartbeat ping failed", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.log.Error("Heartbeat ping rejected", "url", url, "status", resp.StatusCode)
		return
	}

	f.log.Debug("Heartbeat ping sent", "url", url)
}
