package main

import (
	"context"
	"os"

	"projectai/internal/bootstrap"
	"projectai/internal/shared/config"
	"projectai/internal/shared/server"
	"projectai/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	defer telemetry.Sync()

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		telemetry.Error("api.bootstrap_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.listening", map[string]any{"addr": addr, "env": cfg.Env})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("api.server_error", map[string]any{"error": err})
		os.Exit(1)
	}
}
