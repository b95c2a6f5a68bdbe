package tools

import (
	"net/http"
	"time"

	"github.com/toolrelay/toolrelay/internal/registry"
)

const defaultRequestTimeout = 30 * time.Second

// Option configures the builtin tool set.
type Option func(*config)

type config struct {
	httpClient *http.Client
}

// WithHTTPClient sets the client used by the make_request tool.
// The default client carries a 30 second timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

// All returns the full builtin tool catalog: basic, math, string, file,
// utility, and web tools.
func All(opts ...Option) []*registry.Tool {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	var all []*registry.Tool
	all = append(all, basicTools()...)
	all = append(all, mathTools()...)
	all = append(all, stringTools()...)
	all = append(all, fileTools()...)
	all = append(all, utilityTools()...)
	all = append(all, webTools(cfg.httpClient)...)

	return all
}
