package heartbeat

import (
	"context"
	"log/slog"

	"solwatch/internal/core/config"
	"solwatch/internal/infra/rpc"
)

// HealthProber probes a node's health endpoint.
type HealthProber interface {
	Health(ctx context.Context, url string) rpc.HealthResult
}

// Pinger notifies a heartbeat endpoint.
type Pinger interface {
	Ping(ctx context.Context, url string)
}

// Checker runs one health-check cycle over the configured hosts.
type Checker struct {
	hosts  []config.HostConfig
	probe  HealthProber
	pinger Pinger
	log    *slog.Logger
}

// NewChecker creates a checker over the given hosts.
func NewChecker(hosts []config.HostConfig, probe HealthProber, pinger Pinger) *Checker {
	return &Checker{
		hosts:  hosts,
		probe:  probe,
		pinger: pinger,
		log:    slog.Default(),
	}
}

// RunCycle probes every host in configured order and pings its heartbeat
// endpoint when healthy. An unhealthy host gets no ping this cycle; that
// silence is the alerting signal. Hosts are independent: one host's outcome
// never affects another's.
func (c *Checker) RunCycle(ctx context.Context) {
	for _, h := range c.hosts {
		res := c.probe.Health(ctx, h.RPCURL)
		if !res.Healthy {
			c.log.Error("Node unhealthy, skipping heartbeat", "host", h.Host, "url", h.RPCURL)
			continue
		}

		if res.HasSlot {
			c.log.Info("Node healthy", "host", h.Host, "slot", res.Slot)
		} else {
			c.log.Info("Node healthy", "host", h.Host)
		}
		c.pinger.Ping(ctx, h.HeartbeatEndpoint)
	}
}
