package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhuss/streamline/pkg/config"
	"github.com/rhuss/streamline/pkg/debug"
	"github.com/rhuss/streamline/pkg/stream"
	"github.com/rhuss/streamline/pkg/telemetry"
	transporthttp "github.com/rhuss/streamline/pkg/transport/http"
)

var (
	configPath string
	portFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "streamline",
	Short: "Streamline - paced plain-text streaming service",
	Long: `Streamline serves a POST endpoint that streams a list of items line by line,
flushing every line and pausing between them. Failures are reported as
application/problem+json documents.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file")
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Listen port (overrides config and STREAMLINE_PORT)")
}

func run(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = portFlag
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
	}

	logger := debug.Init(cfg.Logging.Debug, cfg.Logging.Level, cfg.Logging.Format)

	tracing := cfg.Observability.Tracing
	shutdownTracing, err := telemetry.InitTraceProvider(cmd.Context(), telemetry.Config{
		Endpoint:    tracing.Endpoint,
		Insecure:    tracing.Insecure,
		ServiceName: tracing.ServiceName,
		Version:     Version,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()
	if tracing.Endpoint != "" {
		logger.Info("trace export enabled", "endpoint", tracing.Endpoint)
	}

	adapterCfg := transporthttp.Config{
		StreamPath:  cfg.Stream.Path,
		MaxBodySize: cfg.Server.MaxBodySize,
		CORS:        cfg.CORS.Enabled,
	}
	if cfg.Observability.Metrics.Enabled {
		adapterCfg.MetricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(
		stream.NewSliceSource(cfg.Stream.Items...),
		stream.NewEmitter(emitInterval(cfg.Stream.Interval)),
		transporthttp.WithAddr(":"+strconv.Itoa(cfg.Server.Port)),
		transporthttp.WithReadTimeout(cfg.Server.ReadTimeout),
		transporthttp.WithWriteTimeout(cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithAdapterConfig(adapterCfg),
		transporthttp.WithLogger(logger),
	)

	logger.Info("streaming endpoint ready",
		slog.String("path", cfg.Stream.Path),
		slog.Int("items", len(cfg.Stream.Items)),
		slog.Duration("interval", cfg.Stream.Interval),
	)
	return srv.ListenAndServe()
}

// emitInterval maps the configured interval to the emitter's: a configured
// zero turns pacing off.
func emitInterval(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}
