package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" validate:"omitempty,url"`

	// CatalogTable is the table catalog records live in. It is interpolated
	// into SQL as an identifier, so it is validated strictly here.
	CatalogTable    string `env:"CATALOG_TABLE" envDefault:"books" validate:"required"`
	CatalogLanguage string `env:"CATALOG_LANGUAGE" envDefault:"en" validate:"required"`

	PriceBandMin       int     `env:"PRICE_BAND_MIN" envDefault:"180" validate:"min=0"`
	PriceBandMax       int     `env:"PRICE_BAND_MAX" envDefault:"420" validate:"min=0"`
	PriceSummaryCap    int     `env:"PRICE_SUMMARY_CAP" envDefault:"2000" validate:"gt=0"`
	PriceContentSpread float64 `env:"PRICE_CONTENT_SPREAD" envDefault:"0.25" validate:"min=0"`
	PriceLocale        string  `env:"PRICE_LOCALE" envDefault:"en-IN" validate:"required"`
	PriceSymbol        string  `env:"PRICE_SYMBOL" envDefault:"₹" validate:"required"`

	CacheProvider        string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	SessionStoreProvider string `env:"SESSION_STORE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisAddr            string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"required_if=CacheProvider redis,required_if=SessionStoreProvider redis"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	RedisDB              int    `env:"REDIS_DB" envDefault:"0"`

	StripeSecretKey  string `env:"STRIPE_SECRET_KEY"`
	CheckoutCurrency string `env:"CHECKOUT_CURRENCY" envDefault:"inr" validate:"required,len=3"`

	SentryDSN string `env:"SENTRY_DSN"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	LogFile   string     `env:"LOG_FILE"`
}

var configValidator = validator.New()

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	if !tableNamePattern.MatchString(c.CatalogTable) {
		return fmt.Errorf("CATALOG_TABLE must be a plain lowercase identifier, got %q", c.CatalogTable)
	}

	if c.PriceBandMax < c.PriceBandMin {
		return fmt.Errorf("PRICE_BAND_MAX (%d) must not be below PRICE_BAND_MIN (%d)", c.PriceBandMax, c.PriceBandMin)
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if strings.TrimSpace(c.StripeSecretKey) != "" && baseURL == "" {
		return fmt.Errorf("BASE_URL is required when Stripe checkout is enabled")
	}

	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("BASE_URL must be a valid absolute URL")
		}
		if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
			return fmt.Errorf("BASE_URL must use https outside local development")
		}
	}

	return nil
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
