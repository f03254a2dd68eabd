package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// EndpointConfig is the token bucket applied to one route.
type EndpointConfig struct {
	Path   string     // Endpoint path; a trailing "/" matches by prefix
	Method string     // HTTP method (GET, POST, etc.)
	Rate   rate.Limit // Sustained requests per second
	Burst  int        // Bucket size
}

// Unlimited reports whether the endpoint skips rate limiting.
func (e *EndpointConfig) Unlimited() bool {
	return e.Rate == rate.Inf || e.Burst <= 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultRate     rate.Limit
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig builds the configuration for the API. aiRate and aiBurst bound
// the endpoints that call the model; everything else gets the lenient
// default. RATE_LIMIT_ENABLED, RATE_LIMIT_WHITELIST and RATE_LIMIT_BLACKLIST
// are read from the environment.
func LoadConfig(aiRate float64, aiBurst int) *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultRate:     rate.Every(time.Minute / 1000),
		DefaultBurst:    100,
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTimeout:     time.Hour,
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: AIEndpointConfigs(aiRate, aiBurst),
	}
}

// AIEndpointConfigs limits the routes that call the model.
func AIEndpointConfigs(aiRate float64, aiBurst int) []EndpointConfig {
	if aiBurst <= 0 {
		aiBurst = 1
	}
	limit := rate.Limit(aiRate)
	return []EndpointConfig{
		{Path: "/candidates/analyze", Method: "POST", Rate: limit, Burst: aiBurst},
		{Path: "/search", Method: "POST", Rate: limit, Burst: aiBurst},
	}
}

// MatchEndpoint returns the configuration for a request, or nil when the
// default applies. Health checks are never limited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method, Rate: rate.Inf}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
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
