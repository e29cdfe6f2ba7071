package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"solwatch/internal/core/config"
	"solwatch/internal/core/scheduler"
	"solwatch/internal/exporter"
	"solwatch/internal/infra/rpc"
)

var (
	exporterCfgPath string
	exporterDebug   bool
)

var exporterCmd = &cobra.Command{
	Use:   "solwatch-exporter",
	Short: "Prometheus exporter for Solana node slot freshness",
	Long: `solwatch-exporter polls each configured node's getSlot RPC on a fixed
interval, compares it against a trusted reference endpoint and exposes the
observed slots, differences and probe error counters for scraping.`,
	Run: runExporter,
}

func init() {
	exporterCmd.PersistentFlags().StringVar(&exporterCfgPath, "config", "config.json", "path to the config file")
	exporterCmd.PersistentFlags().BoolVar(&exporterDebug, "debug", false, "enable debug logging")
}

// ExecuteExporter is the entry point for the exporter binary.
func ExecuteExporter() {
	if err := exporterCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExporter(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	cfg, err := config.LoadExporter(exporterCfgPath)
	if err != nil {
		initLogger(false)
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	initLogger(exporterDebug)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics := exporter.NewMetrics(registry)
	probe := rpc.NewClient(probeTimeout)
	collector := exporter.NewCollector(cfg, probe, metrics)

	server := exporter.NewServer(registry, cfg.ExporterPort)
	if err := server.Start(); err != nil {
		slog.Error("Failed to start metrics server", "error", err)
		os.Exit(1)
	}
	slog.Info("Metrics server listening", "addr", server.Addr())

	ctx, cancel := signalContext()
	defer cancel()

	slog.Info("Slot collector started",
		"hosts", len(cfg.Hosts),
		"reference", cfg.ReferenceEndpoint,
		"interval", cfg.Interval())
	scheduler.Run(ctx, cfg.Interval(), collector.RunCycle)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Exporter stopped gracefully")
}
