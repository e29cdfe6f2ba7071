package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"solwatch/internal/core/config"
	"solwatch/internal/core/scheduler"
	"solwatch/internal/heartbeat"
	"solwatch/internal/infra/rpc"
)

var (
	heartbeatCfgPath string
	heartbeatDebug   bool
)

var heartbeatCmd = &cobra.Command{
	Use:   "solwatch-heartbeat",
	Short: "Solana node health checker with dead-man's-switch pings",
	Long: `solwatch-heartbeat probes each configured node's getHealth RPC on a fixed
interval and, for every node that answers healthy, GETs its heartbeat
endpoint. A node that stops answering stops being pinged, which is what the
dead-man's-switch service alerts on.`,
	Run: runHeartbeat,
}

func init() {
	heartbeatCmd.PersistentFlags().StringVar(&heartbeatCfgPath, "config", "config.json", "path to the config file")
	heartbeatCmd.PersistentFlags().BoolVar(&heartbeatDebug, "debug", false, "enable debug logging")
}

// ExecuteHeartbeat is the entry point for the heartbeat binary.
func ExecuteHeartbeat() {
	if err := heartbeatCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runHeartbeat(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	cfg, err := config.LoadHeartbeat(heartbeatCfgPath)
	if err != nil {
		initLogger(false)
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	initLogger(heartbeatDebug)

	probe := rpc.NewClient(probeTimeout)
	forwarder := heartbeat.NewForwarder(probeTimeout)
	checker := heartbeat.NewChecker(cfg.Hosts, probe, forwarder)

	ctx, cancel := signalContext()
	defer cancel()

	slog.Info("Heartbeat checker started", "hosts", len(cfg.Hosts), "interval", cfg.Interval())
	scheduler.Run(ctx, cfg.Interval(), checker.RunCycle)
	slog.Info("Heartbeat checker stopped")
}
