// Package exporter compares node slots against a reference endpoint and
// publishes the result as Prometheus metrics.
package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// referenceLabel identifies the reference endpoint in per-probe series that
// cover both nodes and the reference.
const referenceLabel = "reference"

// Metrics holds the exporter's metric series. The registry is injected so
// the process owns exactly one and tests can assert against their own.
type Metrics struct {
	// NodeSlot tracks the last observed slot per node
	NodeSlot *prometheus.GaugeVec

	// ReferenceSlot tracks the last observed slot of the reference endpoint
	ReferenceSlot prometheus.Gauge

	// SlotDifference tracks reference slot minus node slot per node.
	// Negative values mean the node is ahead of the reference.
	SlotDifference *prometheus.GaugeVec

	// NodeSlotErrors counts failed slot probes per node
	NodeSlotErrors *prometheus.CounterVec

	// ReferenceSlotErrors counts failed reference slot probes
	ReferenceSlotErrors prometheus.Counter

	// ProbeDuration tracks getSlot probe latency
	ProbeDuration *prometheus.HistogramVec
}

// NewMetrics registers the exporter's series on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		NodeSlot: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "solana_node_slot_number",
				Help: "Slot number of the Solana node",
			},
			[]string{"host"},
		),
		ReferenceSlot: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "solana_reference_slot_number",
				Help: "Slot number of the reference endpoint",
			},
		),
		SlotDifference: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "solana_slot_difference",
				Help: "Difference between the reference slot and the node slot",
			},
			[]string{"host"},
		),
		NodeSlotErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solana_node_slot_error_count",
				Help: "Number of errors fetching a node slot",
			},
			[]string{"host"},
		),
		ReferenceSlotErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "solana_reference_slot_error_count",
				Help: "Number of errors fetching the reference slot",
			},
		),
		ProbeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solana_slot_probe_duration_seconds",
				Help:    "Duration of getSlot probes",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"host"},
		),
	}
}
