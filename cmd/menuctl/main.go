package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"menugen/internal/app"
	"menugen/internal/config"
	"menugen/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "menuctl",
	Short:         "Generate and inspect the cached restaurant menu",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(generateCmd, showCmd)
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := logging.New(cfg.Production(), cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logger init failed: %w", err)
	}

	return cfg, logger, nil
}

// buildApp resolves config from the environment and wires the pipeline.
func buildApp(ctx context.Context) (*app.App, *zap.Logger, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return a, logger, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "menuctl:", err)
		stop()
		os.Exit(1)
	}
}
