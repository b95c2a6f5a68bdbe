// Package config holds the server configuration: listen address, CORS
// policy, timeouts, and the unknown-argument validation policy. Config comes
// from a YAML file discovered at startup, with flag overrides applied on top.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/toolrelay/toolrelay/internal/validate"
)

const (
	projectConfigName = "toolrelay.yaml"
	homeConfigDir     = ".toolrelay"
	homeConfigName    = "config.yaml"
)

// Config is the full server configuration.
type Config struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CallTimeout  time.Duration `yaml:"call_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	ArgPolicy    string        `yaml:"arg_policy"`
	LogLevel     string        `yaml:"log_level"`
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8000,
		CORSOrigins:  []string{"*"},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		CallTimeout:  30 * time.Second,
		MaxBodyBytes: 1 << 20,
		ArgPolicy:    string(validate.RejectUnknown),
		LogLevel:     "info",
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Policy returns the unknown-argument policy as a validate.Policy.
func (c Config) Policy() validate.Policy {
	return validate.Policy(c.ArgPolicy)
}

// SlogLevel maps the configured log level onto slog's levels.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug

	case "warn", "warning":
		return slog.LevelWarn

	case "error":
		return slog.LevelError

	default:
		return slog.LevelInfo
	}
}

// Validate checks the configuration for values that cannot serve.
func (c Config) Validate() error {
	// Port 0 binds an ephemeral port, which tests rely on.
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if !c.Policy().Valid() {
		return fmt.Errorf("unknown arg_policy %q (want %q or %q)",
			c.ArgPolicy, validate.RejectUnknown, validate.IgnoreUnknown)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}

	return nil
}

// DiscoverPath resolves the config file location with first-match semantics:
// the explicit path if given (missing is then an error), else toolrelay.yaml
// in the working directory, else config.yaml under ~/.toolrelay. The second
// return reports whether a file was found; no file at all is not an error.
func DiscoverPath(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve user home: %w", err)
	}

	return DiscoverPathFrom(explicitPath, cwd, homeDir)
}

// DiscoverPathFrom is a testable variant of DiscoverPath.
func DiscoverPathFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	explicit := strings.TrimSpace(explicitPath) != ""

	var candidates []string
	if explicit {
		candidates = []string{filepath.Clean(strings.TrimSpace(explicitPath))}
	} else {
		candidates = []string{
			filepath.Join(cwd, projectConfigName),
			filepath.Join(homeDir, homeConfigDir, homeConfigName),
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}

		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return "", false, fmt.Errorf("config file %q not found", candidate)
			}

			continue
		}

		if err != nil {
			return "", false, fmt.Errorf("checking config path %q: %w", candidate, err)
		}
	}

	return "", false, nil
}

// Load reads and validates a config file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}
