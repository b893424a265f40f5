package app

import (
	"errors"
	"strings"
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

	UpstreamBaseURL string        `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`

	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	ReportsCacheTTL time.Duration `envconfig:"REPORTS_CACHE_TTL" default:"10m"`

	WarmupCron string `envconfig:"WARMUP_CRON" default:"*/15 * * * *"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.UpstreamBaseURL = strings.TrimRight(cfg.UpstreamBaseURL, "/")
	if cfg.UpstreamBaseURL == "" {
		return nil, errors.New("upstream base url must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
