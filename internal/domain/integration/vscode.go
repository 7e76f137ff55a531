package integration

import (
	"os"
	"path/filepath"
)

// VSCodeIntegration configures VS Code.
type VSCodeIntegration struct{}

func (v *VSCodeIntegration) Name() string { return "vscode" }

// Install adds the server to ~/.vscode/mcp.json. VS Code keys servers under
// "servers" and needs an explicit type for stdio entries.
func (v *VSCodeIntegration) Install(e Entry) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	cfg := e.serverConfig()
	if e.IsStdio() {
		cfg["type"] = "stdio"
	}

	path := filepath.Join(home, ".vscode", "mcp.json")
	return path, mergeJSONServer(path, "servers", e.Name, cfg)
}
