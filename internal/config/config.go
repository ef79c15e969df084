package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// APIURL is the base URL of the GigFlow backend.
	APIURL string `env:"GIGFLOW_API_URL" envDefault:"http://localhost:5000"`
	// Dir holds the local cache (session slot, cookie jar). Empty means
	// ~/.gigflow.
	Dir         string        `env:"GIGFLOW_DIR"`
	HTTPTimeout time.Duration `env:"GIGFLOW_HTTP_TIMEOUT" envDefault:"15s"`
}

func NewConfig() (*Config, error) {
	config := &Config{}

	err := env.Parse(config)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfig: %w", err)
	}
	if config.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.NewConfig: %w", err)
		}
		config.Dir = filepath.Join(home, ".gigflow")
	}
	return config, nil
}
