package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact paths win over prefixes; a configured path ending in "/" matches every
// path below it (e.g. "/sessions/" matches "/sessions/{id}/apply").
// Returns nil if no configuration matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	method = strings.ToUpper(method)

	// Health check is unlimited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Longest matching prefix wins
	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.HasSuffix(config.Path, "/") {
			continue
		}
		if strings.HasPrefix(path, config.Path) && (best == nil || len(config.Path) > len(best.Path)) {
			best = config
		}
	}
	return best
}
