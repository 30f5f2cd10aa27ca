package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/cart"
	"github.com/Yana3030-web/stroymaster-website/internal/catalog"
	"github.com/Yana3030-web/stroymaster-website/internal/config"
	"github.com/Yana3030-web/stroymaster-website/internal/database"
	"github.com/Yana3030-web/stroymaster-website/internal/handler"
	"github.com/Yana3030-web/stroymaster-website/internal/order"
	"github.com/Yana3030-web/stroymaster-website/internal/relay"
	"github.com/Yana3030-web/stroymaster-website/internal/repository"
	"github.com/Yana3030-web/stroymaster-website/internal/router"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize catalogue access
	productRepo := repository.NewProductRepository(pool, logger)
	gateway := catalog.NewGateway(productRepo, logger)

	// Initialize cart store with Redis and in-memory fallback
	memoryStore := cart.NewMemoryStore(cfg.Cart.TTL, logger)
	defer memoryStore.Close()
	var cartStore cart.Store

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisStore, err := cart.NewRedisStore(ctx, client, cfg.Cart.TTL, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise Redis cart store, falling back to in-memory carts")
			cartStore = memoryStore
		} else {
			cartStore = redisStore
		}
	} else {
		cartStore = memoryStore
		logger.Info().Msg("using in-memory cart store (Redis disabled)")
	}

	// Initialize the order submission flow. A nil sender means orders go
	// straight to the mailto fallback.
	var sender relay.Sender
	if cfg.Relay.Configured {
		sender = relay.NewClient(cfg.Relay, logger)
	} else {
		logger.Warn().Msg("email relay not configured, orders will use the mailto fallback")
	}
	flow := order.NewFlow(cartStore, sender, cfg.Relay, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(gateway, logger)
	cartHandler := handler.NewCartHandler(cartStore, gateway, logger)
	orderHandler := handler.NewOrderHandler(flow, logger)
	liveSearchHandler := handler.NewLiveSearchHandler(gateway, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, orderHandler, liveSearchHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
