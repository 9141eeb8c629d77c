package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverPostgREST = "postgrest"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	StoreDriver     string
	DatabaseURL     string
	SQLitePath      string
	PostgRESTURL    string
	PostgRESTAPIKey string
	HTTPRetryMax    int

	Port            string
	LogLevel        string
	LogFormat       string
	RateLimitImport RateLimitConfig
	ImportMaxBytes  int64
	ShutdownTimeout time.Duration
}

// Defaults applied before the environment and the optional config file.
var defaults = map[string]any{
	"STORE_DRIVER":      DriverSQLite,
	"SQLITE_PATH":       "battlecards.db",
	"PORT":              "8080",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "text",
	"RATE_LIMIT_IMPORT": "5/min",
	"IMPORT_MAX_BYTES":  5 << 20,
	"HTTP_RETRY_MAX":    3,
	"SHUTDOWN_TIMEOUT":  "10s",
}

// New prepares a viper instance reading environment variables and, when
// configFile is set, a YAML or JSON file. Keys are case-insensitive, so a
// file may spell DATABASE_URL as database_url.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	v, err := New("")
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		PostgRESTURL:    v.GetString("POSTGREST_URL"),
		PostgRESTAPIKey: v.GetString("POSTGREST_API_KEY"),
		HTTPRetryMax:    v.GetInt("HTTP_RETRY_MAX"),
		Port:            v.GetString("PORT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ImportMaxBytes:  v.GetInt64("IMPORT_MAX_BYTES"),
		ShutdownTimeout: parseDuration(v.GetString("SHUTDOWN_TIMEOUT")),
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s store", DriverPostgres)
		}
	case DriverSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the %s store", DriverSQLite)
		}
	case DriverPostgREST:
		if cfg.PostgRESTURL == "" {
			return nil, fmt.Errorf("POSTGREST_URL is required for the %s store", DriverPostgREST)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.ImportMaxBytes <= 0 {
		return nil, fmt.Errorf("IMPORT_MAX_BYTES must be positive, got %d", cfg.ImportMaxBytes)
	}
	if cfg.HTTPRetryMax < 0 {
		cfg.HTTPRetryMax = 0
	}

	rl, err := parseRateLimit(v.GetString("RATE_LIMIT_IMPORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_IMPORT value: %w", err)
	}
	cfg.RateLimitImport = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
