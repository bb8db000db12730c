package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/syntrixbase/docgate/internal/config"
	"github.com/syntrixbase/docgate/internal/logging"
	"github.com/syntrixbase/docgate/internal/services"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logging
	if err := logging.Initialize(cfg.Logging, cfg.Service.Name); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	// 3. Connect the store and register routes. Nothing listens until this
	// succeeds.
	mgr := services.NewManager(cfg)

	initCtx, initCancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout+cfg.Server.ShutdownTimeout)
	defer initCancel()

	if err := mgr.Init(initCtx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// 4. Start Services
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	mgr.Start(bgCtx)

	// 5. Wait for Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("Shutting down", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	mgr.Shutdown(shutdownCtx)
	bgCancel()
}
