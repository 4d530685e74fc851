// internal/config/config.go
//
// Process configuration, read from the environment (and an optional .env
// file loaded by the CLI before Load runs).
//
// Every instance of a deployment must share SIGNING_SECRET and SEED_SALT:
// the first authenticates URLs minted by any instance, the second fixes
// which pair a seed key maps to.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// DevSecret is used when SIGNING_SECRET is unset outside production.
const DevSecret = "dev_secret_change_me"

type Config struct {
	Env            string        `env:"ENV" envDefault:"development"`
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":5175"`
	PublicURL      string        `env:"PUBLIC_URL" envDefault:"http://localhost:5175"`
	SigningSecret  string        `env:"SIGNING_SECRET"`
	SeedSalt       string        `env:"SEED_SALT" envDefault:"salt"`
	PlacesFile     string        `env:"PLACES_FILE"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SigningSecret == "" && !cfg.Production() {
		cfg.SigningSecret = DevSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Production reports whether ENV names a production deployment.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate checks values the parser cannot.
func (c *Config) Validate() error {
	var errs []error
	if c.SigningSecret == "" {
		errs = append(errs, errors.New("SIGNING_SECRET is required"))
	}
	if c.Production() && c.SigningSecret == DevSecret {
		errs = append(errs, errors.New("SIGNING_SECRET must be changed in production"))
	}
	if c.SeedSalt == "" {
		errs = append(errs, errors.New("SEED_SALT must not be empty"))
	}
	if u, err := url.Parse(c.PublicURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("PUBLIC_URL %q is not an absolute http(s) url", c.PublicURL))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q: want json or console", c.LogFormat))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be positive"))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be at least 1"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
