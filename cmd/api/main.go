package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ledgerr/tigerbeetle-facade/internal/api"
	"github.com/ledgerr/tigerbeetle-facade/internal/api/service"
	"github.com/ledgerr/tigerbeetle-facade/internal/config"
	"github.com/ledgerr/tigerbeetle-facade/internal/logger"
	"github.com/ledgerr/tigerbeetle-facade/internal/platform/tigerbeetle"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// One long-lived engine client, shared by all requests and released at
	// shutdown
	tbClient, err := tigerbeetle.NewClient(log, &cfg.TigerBeetle)
	if err != nil {
		log.Error("Failed to initialize TigerBeetle client", "error", err)
		os.Exit(1)
	}

	// Initialize the ledger facade service
	ledgerService := service.NewLedgerService(log, tbClient)

	// Initialize REST server
	server := api.NewServer(log, cfg, ledgerService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	tbClient.Close()

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
