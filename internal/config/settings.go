// Package config resolves server settings from defaults, a YAML file, a
// .env file and the process environment.
package config

import (
	"fmt"
	"strings"
)

// Settings represents global server configuration.
type Settings struct {
	// Port is the HTTP/SSE listen port.
	Port int    `yaml:"port" json:"port"`
	Host string `yaml:"host" json:"host"`

	// BaseURL prefixes the message endpoint advertised to SSE clients.
	// Empty means clients get a path relative to the URL they connected to.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// CatalogPath points at a YAML, TOML or JSON catalog file. Empty serves
	// the built-in sample catalog.
	CatalogPath string `yaml:"catalog_path" json:"catalog_path"`

	LogLevel string `yaml:"log_level" json:"log_level"`
	LogDir   string `yaml:"log_dir" json:"log_dir"`

	// MetricsPort serves Prometheus metrics on a separate listener; 0 disables it.
	MetricsPort int `yaml:"metrics_port" json:"metrics_port"`
}

// DefaultSettings returns the standard configuration.
func DefaultSettings() Settings {
	return Settings{
		Port:     3001,
		LogLevel: "info",
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that settings are usable.
func (s Settings) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("port out of range: %d", s.Port)
	}
	if s.MetricsPort < 0 || s.MetricsPort > 65535 {
		return fmt.Errorf("metrics port out of range: %d", s.MetricsPort)
	}
	if s.MetricsPort != 0 && s.MetricsPort == s.Port {
		return fmt.Errorf("metrics port must differ from port %d", s.Port)
	}
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return fmt.Errorf("unknown log level %q", s.LogLevel)
	}
	return nil
}

// Addr is the HTTP listen address.
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsAddr is the metrics listen address, or "" when metrics are disabled.
func (s Settings) MetricsAddr() string {
	if s.MetricsPort == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", s.Host, s.MetricsPort)
}
