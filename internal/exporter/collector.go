package exporter

import (
	"context"
	"log/slog"
	"time"

	"solwatch/internal/core/config"
)

// SlotProber probes a node's current slot.
type SlotProber interface {
	Slot(ctx context.Context, url string) (uint64, bool)
}

// Collector runs the per-cycle slot comparison and records the outcome in
// the metric registry.
type Collector struct {
	hosts     []config.HostConfig
	reference string
	probe     SlotProber
	metrics   *Metrics
	log       *slog.Logger
}

// NewCollector creates a collector for the configured hosts and reference
// endpoint.
func NewCollector(cfg *config.ExporterConfig, probe SlotProber, m *Metrics) *Collector {
	// Materialize zero-valued error counters so every configured host is
	// visible from the first scrape. Gauges stay unset until observed.
	for _, h := range cfg.Hosts {
		m.NodeSlotErrors.WithLabelValues(h.Host)
	}

	return &Collector{
		hosts:     cfg.Hosts,
		reference: cfg.ReferenceEndpoint,
		probe:     probe,
		metrics:   m,
		log:       slog.Default(),
	}
}

// RunCycle performs one comparison cycle. Without a reference slot the
// per-host differences are meaningless, so a failed reference probe aborts
// the cycle and all gauges keep their last values. A failed node probe only
// skips that node: its gauges stay stale rather than dropping to zero, which
// would read as the node being at genesis.
func (c *Collector) RunCycle(ctx context.Context) {
	start := time.Now()
	refSlot, ok := c.probe.Slot(ctx, c.reference)
	c.metrics.ProbeDuration.WithLabelValues(referenceLabel).Observe(time.Since(start).Seconds())
	if !ok {
		c.metrics.ReferenceSlotErrors.Inc()
		c.log.Error("Reference slot unavailable, skipping cycle", "url", c.reference)
		return
	}

	c.metrics.ReferenceSlot.Set(float64(refSlot))
	c.log.Debug("Reference slot observed", "slot", refSlot)

	for _, h := range c.hosts {
		start := time.Now()
		slot, ok := c.probe.Slot(ctx, h.RPCURL)
		c.metrics.ProbeDuration.WithLabelValues(h.Host).Observe(time.Since(start).Seconds())
		if !ok {
			c.metrics.NodeSlotErrors.WithLabelValues(h.Host).Inc()
			c.log.Error("Node slot unavailable", "host", h.Host, "url", h.RPCURL)
			continue
		}

		diff := int64(refSlot) - int64(slot)
		c.metrics.NodeSlot.WithLabelValues(h.Host).Set(float64(slot))
		c.metrics.SlotDifference.WithLabelValues(h.Host).Set(float64(diff))
		c.log.Info("Node slot observed", "host", h.Host, "slot", slot, "difference", diff)
	}
}
