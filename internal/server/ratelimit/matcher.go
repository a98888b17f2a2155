package ratelimit

import (
	"strings"

	"github.com/samber/lo"
)

// unlimited is returned for endpoints that are never limited
var unlimited = EndpointConfig{}

// MatchEndpoint finds the configuration for a request. Exact path matches
// win over prefix matches. Returns nil when nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		u := unlimited
		return &u
	}

	if i := indexOf(configs, func(c EndpointConfig) bool {
		return c.Method == method && c.Path == path
	}); i >= 0 {
		return &configs[i]
	}

	if i := indexOf(configs, func(c EndpointConfig) bool {
		return c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path)
	}); i >= 0 {
		return &configs[i]
	}

	return nil
}

func indexOf(configs []EndpointConfig, match func(EndpointConfig) bool) int {
	_, i, ok := lo.FindIndexOf(configs, match)
	if !ok {
		return -1
	}
	return i
}
