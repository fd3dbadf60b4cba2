package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Scraper  ScraperConfig
	Notifier NotifierConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

type ScraperConfig struct {
	Timeout         time.Duration
	MaxRetries      int
	BaseDelay       time.Duration
	UserAgent       string
	RequestDelayMin time.Duration
	RequestDelayMax time.Duration
}

type NotifierConfig struct {
	WebhookURL string
	Username   string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Scraper: ScraperConfig{
			Timeout:         getDurationOrDefault("SCRAPER_TIMEOUT", 10*time.Second),
			MaxRetries:      getIntOrDefault("SCRAPER_MAX_RETRIES", 3),
			BaseDelay:       getDurationOrDefault("SCRAPER_BASE_DELAY", 1*time.Second),
			UserAgent:       getEnvOrDefault("SCRAPER_USER_AGENT", ""),
			RequestDelayMin: getDurationOrDefault("SCRAPER_REQUEST_DELAY_MIN", 2*time.Second),
			RequestDelayMax: getDurationOrDefault("SCRAPER_REQUEST_DELAY_MAX", 5*time.Second),
		},
		Notifier: NotifierConfig{
			WebhookURL: getEnvOrDefault("NOTIFIER_WEBHOOK_URL", ""),
			Username:   getEnvOrDefault("NOTIFIER_USERNAME", "amazon-price-notifier"),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 5*time.Minute),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.MaxRetries < 1 {
		return fmt.Errorf("SCRAPER_MAX_RETRIES must be at least 1")
	}

	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("SCRAPER_TIMEOUT must be positive")
	}

	if c.Scraper.RequestDelayMin > c.Scraper.RequestDelayMax {
		return fmt.Errorf("SCRAPER_REQUEST_DELAY_MIN cannot be greater than SCRAPER_REQUEST_DELAY_MAX")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
