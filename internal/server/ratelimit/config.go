package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvAllowlist       = "RATE_LIMIT_ALLOWLIST"
	EnvBlocklist       = "RATE_LIMIT_BLOCKLIST"
)

// EndpointConfig is the limit for one endpoint. A Path ending in "/"
// matches by prefix. Limit is requests per Window and <= 0 means unlimited.
// Burst defaults to Limit.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Allowlist       map[string]bool
	Blocklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns an enabled configuration with the default endpoint limits
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Allowlist:       map[string]bool{},
		Blocklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !envBool(EnvEnabled, true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = envInt(EnvDefaultLimit, cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration(EnvDefaultWindow, cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration(EnvCleanupInterval, cfg.CleanupInterval)
	cfg.Allowlist = parseIPList(os.Getenv(EnvAllowlist))
	cfg.Blocklist = parseIPList(os.Getenv(EnvBlocklist))
	return cfg
}

// DefaultEndpointConfigs returns the endpoint-specific limits.
// Batch and database-backed writes are the expensive operations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/v1/pseudonymize/batch", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/v1/profiles/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 10},
		{Path: "/v1/profiles", Method: "POST", Limit: 120, Window: time.Minute, Burst: 10},
		{Path: "/v1/pseudonymize", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
