package integration

import (
	"os"
	"path/filepath"
)

// ClaudeIntegration configures Claude Desktop.
type ClaudeIntegration struct{}

func (c *ClaudeIntegration) Name() string { return "claude" }

// Install adds the server to claude_desktop_config.json. Claude Desktop only
// launches stdio servers.
func (c *ClaudeIntegration) Install(e Entry) (string, error) {
	if !e.IsStdio() {
		return "", ErrUnsupportedTransport
	}
	path, err := c.findConfig()
	if err != nil {
		return "", err
	}
	return path, mergeJSONServer(path, "mcpServers", e.Name, e.serverConfig())
}

func (c *ClaudeIntegration) findConfig() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "Claude", "claude_desktop_config.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	mac := filepath.Join(home, "Library", "Application Support", "Claude")
	if _, err := os.Stat(mac); err == nil {
		return filepath.Join(mac, "claude_desktop_config.json"), nil
	}
	return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json"), nil
}

// ClaudeCodeIntegration configures Claude Code's user settings.
type ClaudeCodeIntegration struct{}

func (c *ClaudeCodeIntegration) Name() string { return "claude-code" }

// Install adds the server to ~/.claude/settings.json.
func (c *ClaudeCodeIntegration) Install(e Entry) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".claude", "settings.json")
	return path, mergeJSONServer(path, "mcpServers", e.Name, e.serverConfig())
}
