package integration

import (
	"os"
	"path/filepath"
)

// GeminiIntegration configures Gemini CLI.
type GeminiIntegration struct{}

func (g *GeminiIntegration) Name() string { return "gemini" }

// Install adds the server to ~/.gemini/settings.json.
func (g *GeminiIntegration) Install(e Entry) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".gemini", "settings.json")
	return path, mergeJSONServer(path, "mcpServers", e.Name, e.serverConfig())
}
