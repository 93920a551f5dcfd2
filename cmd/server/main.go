package main

import (
	"log/slog"
	"os"

	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
)

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	// Setup app
	app, cfg, stop := internal.SetupApp()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	slog.Info("Starting server", "address", address, "board_size", cfg.Game.BoardSize, "policy", cfg.Game.Policy)

	err := app.Listen(address)
	stop()

	if err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
