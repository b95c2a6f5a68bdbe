package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolrelay/toolrelay"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tool server",
		RunE:  runServe,
	}

	cmd.Flags().String("config", "", "Path to toolrelay.yaml config")
	cmd.Flags().String("host", "", "Listen host")
	cmd.Flags().IntP("port", "p", 0, "Listen port")
	cmd.Flags().StringArray("cors-origin", nil, "Allowed CORS origin (repeatable)")
	cmd.Flags().Duration("call-timeout", 0, "Per-call handler timeout")
	cmd.Flags().String("arg-policy", "", "Unknown-argument policy (strict or ignore)")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	explicitConfig, _ := cmd.Flags().GetString("config")

	cfg, err := loadConfig(explicitConfig)
	if err != nil {
		return err
	}

	applyFlagOverrides(cmd, &cfg)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	srv, err := toolrelay.NewServer(
		toolrelay.WithConfig(cfg),
		toolrelay.WithLogger(log),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func loadConfig(explicitPath string) (toolrelay.Config, error) {
	path, found, err := toolrelay.DiscoverConfigPath(explicitPath)
	if err != nil {
		return toolrelay.Config{}, err
	}

	if !found {
		return toolrelay.DefaultConfig(), nil
	}

	return toolrelay.LoadConfig(path)
}

// applyFlagOverrides layers explicitly set flags over the file config.
func applyFlagOverrides(cmd *cobra.Command, cfg *toolrelay.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}

	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	if cmd.Flags().Changed("cors-origin") {
		cfg.CORSOrigins, _ = cmd.Flags().GetStringArray("cors-origin")
	}

	if cmd.Flags().Changed("call-timeout") {
		var d time.Duration
		d, _ = cmd.Flags().GetDuration("call-timeout")
		cfg.CallTimeout = d
	}

	if cmd.Flags().Changed("arg-policy") {
		cfg.ArgPolicy, _ = cmd.Flags().GetString("arg-policy")
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
}
