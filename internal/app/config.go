package app

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	WorkerMetricsAddr string `envconfig:"WORKER_METRICS_ADDR"`

	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionStore string        `envconfig:"SESSION_STORE" default:"redis"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	WebhookTimeout time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"5s"`
	LookupCacheTTL time.Duration `envconfig:"LOOKUP_CACHE_TTL" default:"10m"`

	Endpoints Endpoints
}

// Endpoints enumerates the base URL of every webhook resource group.
type Endpoints struct {
	Invoice       string `envconfig:"INVOICE_API_URL" default:"http://127.0.0.1:5678/webhook"`
	Quotation     string `envconfig:"QUOTATION_API_URL" default:"http://127.0.0.1:5678/webhook"`
	DeliveryOrder string `envconfig:"DO_API_URL" default:"http://127.0.0.1:5678/webhook"`
	Payment       string `envconfig:"PAYMENT_API_URL" default:"http://127.0.0.1:5678/webhook"`
	Proforma      string `envconfig:"PROFORMA_API_URL" default:"http://127.0.0.1:5678/webhook"`
	Asset         string `envconfig:"ASSET_API_URL" default:"http://127.0.0.1:5678/webhook"`
	Chain         string `envconfig:"CHAIN_API_URL" default:"http://127.0.0.1:5678/webhook"`
	Lookup        string `envconfig:"LOOKUP_API_URL" default:"http://127.0.0.1:5678/webhook"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express through tags.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil")
	}
	if c.WebhookTimeout < 0 {
		return errors.New("config: webhook timeout must not be negative")
	}
	switch c.SessionStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("config: unknown session store %q", c.SessionStore)
	}
	for name, raw := range c.Endpoints.byGroup() {
		if err := validateBaseURL(raw); err != nil {
			return fmt.Errorf("config: %s endpoint: %w", name, err)
		}
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

func (e Endpoints) byGroup() map[string]string {
	return map[string]string{
		"invoice":   e.Invoice,
		"quotation": e.Quotation,
		"do":        e.DeliveryOrder,
		"payment":   e.Payment,
		"proforma":  e.Proforma,
		"asset":     e.Asset,
		"chain":     e.Chain,
		"lookup":    e.Lookup,
	}
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("base url required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host required")
	}
	return nil
}
