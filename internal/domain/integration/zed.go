package integration

import (
	"os"
	"path/filepath"
)

// ZedIntegration configures Zed.
type ZedIntegration struct{}

func (z *ZedIntegration) Name() string { return "zed" }

// Install adds the server to Zed's settings.json under "context_servers".
func (z *ZedIntegration) Install(e Entry) (string, error) {
	path, err := z.findConfig()
	if err != nil {
		return "", err
	}

	cfg := map[string]any{"url": e.URL}
	if e.IsStdio() {
		cfg = e.serverConfig()
	}
	return path, mergeJSONServer(path, "context_servers", e.Name, cfg)
}

func (z *ZedIntegration) findConfig() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		path := filepath.Join(appData, "Zed", "settings.json")
		if _, err := os.Stat(filepath.Dir(path)); err == nil {
			return path, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	paths := []string{
		filepath.Join(home, ".config", "zed", "settings.json"),
		filepath.Join(home, "Library", "Application Support", "Zed", "settings.json"),
	}
	for _, p := range paths {
		if _, err := os.Stat(filepath.Dir(p)); err == nil {
			return p, nil
		}
	}

	// Default to Linux style if nothing else found
	return paths[0], nil
}
