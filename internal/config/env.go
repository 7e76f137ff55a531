package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variables understood by the server.
const (
	EnvConfigFile  = "CATALOG_CONFIG"
	EnvPort        = "PORT"
	EnvCatalogPath = "CATALOG_PATH"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogDir      = "LOG_DIR"
	EnvMetricsPort = "METRICS_PORT"
	EnvBaseURL     = "SSE_BASE_URL"
)

// DefaultConfigFile is read when CATALOG_CONFIG is unset.
const DefaultConfigFile = "course-catalog.yaml"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings with values found through lookup.
func ApplyEnv(s Settings, lookup LookupFunc) (Settings, error) {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := cast.ToIntE(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		s.Port = port
	}
	if v, ok := lookup(EnvMetricsPort); ok && v != "" {
		port, err := cast.ToIntE(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s %q: %w", EnvMetricsPort, v, err)
		}
		s.MetricsPort = port
	}
	if v, ok := lookup(EnvCatalogPath); ok {
		s.CatalogPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.LogLevel = v
	}
	if v, ok := lookup(EnvLogDir); ok {
		s.LogDir = v
	}
	if v, ok := lookup(EnvBaseURL); ok {
		s.BaseURL = v
	}
	return s, nil
}

// Resolve builds settings from, in increasing precedence: defaults, the YAML
// config file, the .env file and the process environment.
func Resolve() (Settings, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Settings{}, err
	}

	path := os.Getenv(EnvConfigFile)
	if path == "" {
		path = DefaultConfigFile
	}

	settings, err := NewStore(path).Load()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	settings, err = ApplyEnv(settings, os.LookupEnv)
	if err != nil {
		return Settings{}, err
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}
