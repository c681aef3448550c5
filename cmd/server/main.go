package main

import (
	"context"
	"log/slog"
	"os"

	"appraise/internal/app/server"
	"appraise/internal/platform/config"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
