package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gamewatch/gamewatch/internal/analyzer"
	"github.com/gamewatch/gamewatch/internal/config"
	"github.com/gamewatch/gamewatch/internal/metrics"
	"github.com/gamewatch/gamewatch/internal/repo"
	"github.com/gamewatch/gamewatch/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath    string
		format        string
		prometheusURL string
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "gamewatch",
		Short: "Analyze game server metrics and report health issues",
		Long: "gamewatch queries a Prometheus-compatible backend for the metrics a running\n" +
			"game WebSocket server exports, evaluates them against fixed thresholds, and\n" +
			"prints a health report with issues and remediation suggestions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(configPath, format, prometheusURL, logLevel, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "report format: text or json")
	cmd.Flags().StringVar(&prometheusURL, "prometheus-url", "", "Prometheus base URL override")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func run(configPath, format, prometheusURL, logLevel string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if prometheusURL != "" {
		cfg.Prometheus.BaseURL = prometheusURL
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	client, err := repo.NewPromClient(
		cfg.Prometheus.BaseURL,
		cfg.Prometheus.QueryTimeout,
		cfg.Prometheus.PingTimeout,
		cfg.Prometheus.RangeStep,
		logger,
	)
	if err != nil {
		return err
	}

	rules, err := analyzer.LoadMessageRules(cfg.Rules.Path, logger)
	if err != nil {
		return fmt.Errorf("load rule pack: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := analyzer.New(logger, client, cfg, rules)

	start := time.Now()
	rep, err := a.Run(ctx)
	metrics.ObserveAnalysis(time.Since(start))
	if err != nil {
		if utils.IsConnectivity(err) {
			// Connectivity failure: print the remediation hint and exit
			// normally without running any analysis.
			fmt.Fprintf(out, "Cannot connect to Prometheus at %s\n", cfg.Prometheus.BaseURL)
			fmt.Fprintln(out, "Make sure the monitoring stack is running:")
			fmt.Fprintln(out, "  docker-compose -f docker-compose.monitoring.yml up -d")
			logger.Debug("connectivity check failed", slog.Any("error", err))
			return nil
		}
		return err
	}

	// Read the run's own counters back into the report diagnostics.
	if snap, gatherErr := metrics.Collect(registry); gatherErr == nil {
		rep.Diagnostics.QuerySuccesses = snap.QuerySuccesses
		rep.Diagnostics.QueryErrors = snap.QueryErrors
		rep.Diagnostics.AnalysisSeconds = snap.AnalysisSeconds
	} else {
		logger.Debug("gather self metrics", slog.Any("error", gatherErr))
	}

	switch cfg.Output.Format {
	case "json":
		if err := rep.RenderJSON(out); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	default:
		if err := rep.RenderText(out); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	}

	// Issue count never affects the exit code.
	return nil
}
