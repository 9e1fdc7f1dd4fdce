package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the token bucket for one route. Paths ending in "/" match
// every path below them.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // Requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // 0 uses Limit
}

// LoadConfig reads the RATE_LIMIT_* environment variables. Unparsable values
// fall back to their defaults.
//
// RATE_LIMIT_MODEL_PER_HOUR overrides the hourly limit of the two routes that
// call the model.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if perHour := envOr("RATE_LIMIT_MODEL_PER_HOUR", 0, strconv.Atoi); perHour > 0 {
		for i := range endpoints {
			if strings.HasPrefix(endpoints[i].Path, "/configs/") {
				endpoints[i].Limit = perHour
			}
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		IdleTTL:         envOr("RATE_LIMIT_IDLE_TTL", time.Hour, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the per-route limits, strictest first.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model calls
		{Path: "/configs/generate", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/configs/analyze", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/sessions/", Method: http.MethodGet, Limit: 600, Window: time.Minute, Burst: 60},

		// Writes
		{Path: "/sessions", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/sessions/", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/sessions/", Method: http.MethodPut, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/projects", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},

		// Everything else gets DefaultLimit; /health is never limited
	}
}

func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

// parseIPList turns "a, b,c" into a set, skipping blanks.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
