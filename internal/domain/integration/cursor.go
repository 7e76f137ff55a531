package integration

import (
	"os"
	"path/filepath"
)

// CursorIntegration configures Cursor.
type CursorIntegration struct{}

func (c *CursorIntegration) Name() string { return "cursor" }

// Install adds the server to Cursor's mcp.json.
func (c *CursorIntegration) Install(e Entry) (string, error) {
	path, err := c.findConfig()
	if err != nil {
		return "", err
	}
	return path, mergeJSONServer(path, "mcpServers", e.Name, e.serverConfig())
}

func (c *CursorIntegration) findConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	paths := []string{
		filepath.Join(home, ".cursor", "mcp.json"),
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		paths = append(paths, filepath.Join(appData, "Cursor", "User", "globalStorage", "mcp.json"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	// If none exist, create in ~/.cursor/mcp.json
	return paths[0], nil
}
