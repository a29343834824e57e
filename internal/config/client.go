package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ClientConfig configura vetctl; solo ENV.
type ClientConfig struct {
	APIURL   string        `env:"VETCTL_API_URL"   env-default:"http://localhost:3001/api"`
	Timeout  time.Duration `env:"VETCTL_TIMEOUT"   env-default:"10s"`
	LogLevel string        `env:"VETCTL_LOG_LEVEL" env-default:"warn"`
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *ClientConfig) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.APIURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("VETCTL_API_URL must be an absolute http(s) url (got %q)", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("VETCTL_TIMEOUT must be > 0 (got %s)", c.Timeout)
	}
	return nil
}
