package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bar-tpv/internal/catalog"
	"bar-tpv/internal/config"
	"bar-tpv/internal/handler"
	"bar-tpv/internal/router"
	"bar-tpv/internal/service"
	"bar-tpv/internal/ticket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting bar-tpv API server")

	// Load the product catalog (embedded seed unless overridden)
	cat, err := catalog.Load(cfg.Catalog.SeedFile, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Ticket rendering and the mocked thermal printer
	renderer := &ticket.Renderer{
		Venue: cfg.Ticket.Venue,
		Dir:   cfg.Ticket.Dir,
	}
	printer := ticket.NewMockPrinter(renderer, ticket.Options{
		Type:              cfg.Printer.Type,
		IP:                cfg.Printer.IP,
		Port:              cfg.Printer.Port,
		CharactersPerLine: cfg.Printer.CharactersPerLine,
	}, logger)

	// Initialize services
	orderManager := service.NewOrderManager(cat, printer, renderer, cfg.Tables.Count, logger)
	productService := service.NewProductService(cat, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, orderManager, logger)
	orderHandler := handler.NewOrderHandler(orderManager, logger)

	// Initialize router
	mux := router.New(productHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("tables", cfg.Tables.Count).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
