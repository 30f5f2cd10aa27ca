package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/config"
	"github.com/Yana3030-web/stroymaster-website/internal/redirect"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := redirect.Config{
		MainDomain: envOr("REDIRECT_MAIN_DOMAIN", "stroymaster11.ru"),
		Subdomain:  envOr("REDIRECT_SUBDOMAIN", "shop.stroymaster11.ru"),
	}

	logCfg := config.LoggerConfig{
		Level:  envOr("LOG_LEVEL", "info"),
		Format: envOr("LOG_FORMAT", "json"),
	}
	logger := config.NewLogger(logCfg)

	addr := envOr("REDIRECT_LISTEN_ADDR", ":8081")
	server := &http.Server{
		Addr:         addr,
		Handler:      redirect.NewHandler(cfg, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().
			Str("address", addr).
			Str("main_domain", cfg.MainDomain).
			Str("subdomain", cfg.Subdomain).
			Msg("redirect server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutting down redirect server")
		return server.Close()
	}
}

func envOr(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
