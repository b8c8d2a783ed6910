package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"projectai/internal/bootstrap"
	"projectai/internal/shared/config"
	"projectai/internal/shared/telemetry"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel string
}

var rootCmd = &cobra.Command{
	Use:   "projectai",
	Short: "Project success prediction and advisory",
	Long:  "projectai scores project plans with the trained classifier, adds advisory\nrecommendations and an optional expert narrative.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		telemetry.Init(rootFlags.logLevel, "console")
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		telemetry.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.Version = version
}

// buildApp loads configuration and wires the same stack the API serves.
func buildApp(cmd *cobra.Command) (*bootstrap.App, error) {
	app, err := bootstrap.Build(cmd.Context(), config.Load())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return app, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
