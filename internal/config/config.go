// Package config resolves voltdesk's runtime settings from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/voltride/voltdesk/internal/logger"
)

// Environment variables read by Load.
const (
	EnvAPIURL    = "VOLTDESK_API_URL"
	EnvAPIToken  = "VOLTDESK_API_TOKEN"
	EnvCachePath = "VOLTDESK_CACHE_PATH"
	EnvTimeout   = "VOLTDESK_API_TIMEOUT_SECONDS"
)

const defaultTimeout = 15 * time.Second

// Config holds the resolved runtime settings.
type Config struct {
	APIURL    string
	APIToken  string
	CachePath string
	Timeout   time.Duration
}

// Load reads a .env file if one exists in the working directory and then
// resolves settings from the environment. Explicit environment variables win
// over .env entries (godotenv never overrides existing values).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Log.Debugf("Skipping .env file: %v", err)
	}

	cfg := &Config{
		APIURL:    os.Getenv(EnvAPIURL),
		APIToken:  os.Getenv(EnvAPIToken),
		CachePath: os.Getenv(EnvCachePath),
		Timeout:   defaultTimeout,
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid %s value %q: must be a positive integer", EnvTimeout, raw)
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	if cfg.CachePath == "" {
		cfg.CachePath = defaultCachePath()
	}

	return cfg, nil
}

// defaultCachePath places the snapshot cache under the user's home directory.
func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".voltdesk.cache.db"
	}
	return filepath.Join(home, ".voltdesk", "cache.db")
}
