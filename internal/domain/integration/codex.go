package integration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// CodexIntegration configures Codex.
type CodexIntegration struct{}

func (c *CodexIntegration) Name() string { return "codex" }

// Install adds the server to ~/.codex/config.toml under [mcp_servers]. Codex
// only launches stdio servers.
func (c *CodexIntegration) Install(e Entry) (string, error) {
	if !e.IsStdio() {
		return "", ErrUnsupportedTransport
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".codex", "config.toml")

	config := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	servers, ok := config["mcp_servers"].(map[string]any)
	if !ok {
		servers = make(map[string]any)
		config["mcp_servers"] = servers
	}
	servers[e.Name] = e.serverConfig()

	newData, err := toml.Marshal(config)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, newData, 0644)
}
