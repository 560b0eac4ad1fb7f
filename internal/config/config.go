package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL      = "http://localhost:8080/api"
	defaultRefreshInterval = 10 * time.Second
	defaultRequestTimeout  = 15 * time.Second
	defaultRateLimit       = 10
	defaultRateBurst       = 20
)

type Config struct {
	APIBaseURL      string
	SessionFile     string
	RefreshInterval time.Duration
	RequestTimeout  time.Duration
	RateLimit       float64
	RateBurst       int
	AppEnv          string
}

// LoadConfig reads .env (if any) and the process environment, falling back
// to defaults for anything unset.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:      strings.TrimRight(getenv("STOREFRONT_API_URL", defaultAPIBaseURL), "/"),
		SessionFile:     getenv("STOREFRONT_SESSION_FILE", defaultSessionFile()),
		RefreshInterval: defaultRefreshInterval,
		RequestTimeout:  defaultRequestTimeout,
		RateLimit:       defaultRateLimit,
		RateBurst:       defaultRateBurst,
		AppEnv:          os.Getenv("APP_ENV"),
	}

	var err error
	if cfg.RefreshInterval, err = durationEnv("STOREFRONT_REFRESH_INTERVAL", defaultRefreshInterval); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = durationEnv("STOREFRONT_REQUEST_TIMEOUT", defaultRequestTimeout); err != nil {
		return nil, err
	}

	if v := os.Getenv("STOREFRONT_RATE_LIMIT"); v != "" {
		cfg.RateLimit, err = strconv.ParseFloat(v, 64)
		if err != nil || cfg.RateLimit <= 0 {
			return nil, fmt.Errorf("invalid STOREFRONT_RATE_LIMIT %q", v)
		}
	}
	if v := os.Getenv("STOREFRONT_RATE_BURST"); v != "" {
		cfg.RateBurst, err = strconv.Atoi(v)
		if err != nil || cfg.RateBurst <= 0 {
			return nil, fmt.Errorf("invalid STOREFRONT_RATE_BURST %q", v)
		}
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("STOREFRONT_API_URL must not be empty")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", k, v)
	}
	return d, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "storefront", "session.json")
}
