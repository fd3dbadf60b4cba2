package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maltedev/amazon-price-notifier/internal/config"
	"github.com/maltedev/amazon-price-notifier/internal/extractor"
	"github.com/maltedev/amazon-price-notifier/internal/fetcher"
	"github.com/maltedev/amazon-price-notifier/internal/models"
	"github.com/maltedev/amazon-price-notifier/internal/notifier"
	"github.com/maltedev/amazon-price-notifier/internal/ratelimit"
	"github.com/maltedev/amazon-price-notifier/internal/result"
	"github.com/maltedev/amazon-price-notifier/internal/scraper"
	"github.com/maltedev/amazon-price-notifier/pkg/logger"
)

func main() {
	var (
		urls       = flag.String("urls", "", "Comma-separated list of Amazon product URLs to scrape")
		inputFile  = flag.String("file", "", "File containing product URLs (one per line)")
		webhookURL = flag.String("webhook", "", "Webhook URL to notify (overrides NOTIFIER_WEBHOOK_URL)")
		dryRun     = flag.Bool("dry-run", false, "Scrape but do not send notifications")
		output     = flag.String("output", "text", "Output format: text, json")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *webhookURL != "" {
		cfg.Notifier.WebhookURL = *webhookURL
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("starting amazon price notifier")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	targets, err := loadTargets(*urls, *inputFile)
	if err != nil {
		logger.Error("failed to load URLs", "error", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		fmt.Println("No URLs to process. Use -urls or -file to specify product pages.")
		flag.Usage()
		os.Exit(1)
	}

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

	logger.Info("scraping", "urls", len(targets))
	results := s.ScrapeBatch(ctx, targets)

	products := report(targets, results, *output)

	failed := len(targets) - len(products)
	if !*dryRun && len(products) > 0 && cfg.Notifier.WebhookURL != "" {
		d := notifier.NewDiscord(cfg.Notifier.WebhookURL, logger, notifier.WithUsername(cfg.Notifier.Username))
		msg := notifier.NewProductFound(products, &notifier.Metadata{Source: "cli"})
		if err := d.Notify(ctx, msg); err != nil {
			logger.Error("notification failed", "error", err)
			os.Exit(1)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// loadTargets merges the -urls flag and the -file contents, preserving order.
func loadTargets(urls, inputFile string) ([]string, error) {
	var targets []string

	if urls != "" {
		for _, u := range strings.Split(urls, ",") {
			if u = strings.TrimSpace(u); u != "" {
				targets = append(targets, u)
			}
		}
	}

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", inputFile, err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" && !strings.HasPrefix(line, "#") {
				targets = append(targets, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", inputFile, err)
		}
	}

	return targets, nil
}

// report prints per-URL outcomes in input order and returns the products that
// were scraped successfully.
func report(targets []string, results []result.Result[models.Product, *scraper.Error], format string) []models.Product {
	var products []models.Product

	if format == "json" {
		type entry struct {
			URL     string          `json:"url"`
			Success bool            `json:"success"`
			Product *models.Product `json:"product,omitempty"`
			Stage   string          `json:"stage,omitempty"`
			Error   string          `json:"error,omitempty"`
		}
		entries := make([]entry, 0, len(results))
		for i, res := range results {
			e := entry{URL: targets[i]}
			if product, ok := res.Unwrap(); ok {
				e.Success = true
				e.Product = &product
				products = append(products, product)
			} else {
				e.Stage = string(res.Error().Stage)
				e.Error = res.Error().Error()
			}
			entries = append(entries, e)
		}
		_ = json.NewEncoder(os.Stdout).Encode(entries)
		return products
	}

	for i, res := range results {
		if product, ok := res.Unwrap(); ok {
			fmt.Printf("OK   %s\n     %s | %s\n", targets[i], product.Title.String(), product.Price.String())
			products = append(products, product)
		} else {
			fmt.Printf("FAIL %s\n     %s\n", targets[i], res.Error().Error())
		}
	}
	return products
}
