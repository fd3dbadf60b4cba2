package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/maltedev/amazon-price-notifier/internal/api"
	"github.com/maltedev/amazon-price-notifier/internal/config"
	"github.com/maltedev/amazon-price-notifier/internal/extractor"
	"github.com/maltedev/amazon-price-notifier/internal/fetcher"
	"github.com/maltedev/amazon-price-notifier/internal/notifier"
	"github.com/maltedev/amazon-price-notifier/internal/ratelimit"
	"github.com/maltedev/amazon-price-notifier/internal/scraper"
	"github.com/maltedev/amazon-price-notifier/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	fetchClient := fetcher.New(fetcher.Config{
		Timeout:    cfg.Scraper.Timeout,
		MaxRetries: cfg.Scraper.MaxRetries,
		BaseDelay:  cfg.Scraper.BaseDelay,
		UserAgent:  cfg.Scraper.UserAgent,
	}, logger)

	limiter := ratelimit.NewAdaptiveLimiter(
		cfg.Scraper.RequestDelayMin,
		cfg.Scraper.RequestDelayMax,
	)

	s := scraper.New(fetchClient, extractor.New(logger), logger, scraper.WithLimiter(limiter))

	var n api.Notifier
	if cfg.Notifier.WebhookURL != "" {
		n = notifier.NewDiscord(cfg.Notifier.WebhookURL, logger, notifier.WithUsername(cfg.Notifier.Username))
	}

	handlers := api.NewHandlers(s, n, logger)
	router := api.NewRouter(handlers)

	server := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeout,
		// Batch scrapes run inside the request; the write timeout has to
		// cover a full sequential batch.
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
