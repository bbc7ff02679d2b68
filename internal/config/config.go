package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// Default displayed price window, matching the marketplace UI.
const (
	DefaultPriceMin = 200
	DefaultPriceMax = 2000
)

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	APIBaseURL     string  `yaml:"apiBaseURL"`
	LogLevel       string  `yaml:"logLevel"`
	RedisAddr      string  `yaml:"redisAddr"`
	RedisPassword  string  `yaml:"redisPassword"`
	TokenKey       string  `yaml:"tokenKey"`
	TokenFile      string  `yaml:"tokenFile"`
	Collation      string  `yaml:"collation"`
	PriceMin       float64 `yaml:"priceMin"`
	PriceMax       float64 `yaml:"priceMax"`
	RequestTimeout string  `yaml:"requestTimeout"`
	NotifyBuffer   int     `yaml:"notifyBuffer"`
}

// Load reads config from path (defaults to config.yaml) and applies
// environment overrides.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if v := os.Getenv("BOOKBAZAAR_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKBAZAAR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("BOOKBAZAAR_TOKEN_KEY"); v != "" {
		cfg.TokenKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKBAZAAR_TOKEN_FILE"); v != "" {
		cfg.TokenFile = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKBAZAAR_COLLATION"); v != "" {
		cfg.Collation = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKBAZAAR_PRICE_MIN"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			cfg.PriceMin = f
		}
	}
	if v := os.Getenv("BOOKBAZAAR_PRICE_MAX"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			cfg.PriceMax = f
		}
	}
	if v := os.Getenv("BOOKBAZAAR_REQUEST_TIMEOUT"); v != "" {
		cfg.RequestTimeout = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKBAZAAR_NOTIFY_BUFFER"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.NotifyBuffer = n
		}
	}
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.TokenKey == "" {
		cfg.TokenKey = "token"
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = ".bookbazaar/token"
	}
	if cfg.PriceMin == 0 && cfg.PriceMax == 0 {
		cfg.PriceMin = DefaultPriceMin
		cfg.PriceMax = DefaultPriceMax
	}
}

func validateConfig(cfg FileConfig) error {
	if cfg.APIBaseURL == "" {
		return errors.New("config: apiBaseURL is required (set in config.yaml or BOOKBAZAAR_API_BASE_URL)")
	}
	if cfg.PriceMin < 0 {
		return errors.New("config: priceMin must be >= 0")
	}
	if cfg.PriceMax < cfg.PriceMin {
		return errors.New("config: priceMax must be >= priceMin")
	}
	if cfg.NotifyBuffer < 0 {
		return errors.New("config: notifyBuffer must be >= 0")
	}
	return nil
}

// ParseRequestTimeout parses the optional request timeout duration string.
func ParseRequestTimeout(timeoutStr string) (time.Duration, error) {
	if timeoutStr == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid requestTimeout duration: %w", err)
	}
	return dur, nil
}
