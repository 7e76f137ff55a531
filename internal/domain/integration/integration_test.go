package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-catalog-mcp/catalog/internal/domain/integration"
	"github.com/course-catalog-mcp/catalog/internal/json"
)

func setupTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("APPDATA", "")
	return home
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var config map[string]any
	require.NoError(t, json.Unmarshal(data, &config))
	return config
}

func server(t *testing.T, config map[string]any, section string) map[string]any {
	t.Helper()
	servers, ok := config[section].(map[string]any)
	require.True(t, ok, "missing section %s", section)
	entry, ok := servers[integration.DefaultEntryName].(map[string]any)
	require.True(t, ok, "missing entry in %s", section)
	return entry
}

func TestEntries(t *testing.T) {
	e := integration.StdioEntry("course-catalog", "")
	assert.True(t, e.IsStdio())
	assert.Nil(t, e.Env)

	e = integration.StdioEntry("course-catalog", "courses.yaml")
	assert.True(t, filepath.IsAbs(e.Env["CATALOG_PATH"]))

	sse := integration.SSEEntry(3001)
	assert.False(t, sse.IsStdio())
	assert.Equal(t, "http://localhost:3001/sse", sse.URL)
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"claude", "claude-code", "codex", "cursor", "gemini", "vscode", "zed"}, integration.Names())

	c, err := integration.Lookup("cursor")
	require.NoError(t, err)
	assert.Equal(t, "cursor", c.Name())

	_, err = integration.Lookup("notepad")
	assert.Error(t, err)
}

func TestCursorIntegration(t *testing.T) {
	home := setupTestHome(t)

	path, err := (&integration.CursorIntegration{}).Install(integration.SSEEntry(3001))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cursor", "mcp.json"), path)

	entry := server(t, readJSON(t, path), "mcpServers")
	assert.Equal(t, "sse", entry["type"])
	assert.Equal(t, "http://localhost:3001/sse", entry["url"])
}

func TestClaudeIntegrationKeepsOtherSettings(t *testing.T) {
	home := setupTestHome(t)
	path := filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","mcpServers":{"other":{"command":"x"}}}`), 0644))

	got, err := (&integration.ClaudeIntegration{}).Install(integration.StdioEntry("/usr/local/bin/course-catalog", ""))
	require.NoError(t, err)
	assert.Equal(t, path, got)

	config := readJSON(t, path)
	assert.Equal(t, "dark", config["theme"])
	assert.Contains(t, config["mcpServers"], "other")

	entry := server(t, config, "mcpServers")
	assert.Equal(t, "/usr/local/bin/course-catalog", entry["command"])
	assert.Equal(t, []any{}, entry["args"])
}

func TestClaudeIntegrationRejectsSSE(t *testing.T) {
	setupTestHome(t)

	_, err := (&integration.ClaudeIntegration{}).Install(integration.SSEEntry(3001))
	assert.ErrorIs(t, err, integration.ErrUnsupportedTransport)
}

func TestClaudeCodeIntegration(t *testing.T) {
	home := setupTestHome(t)

	path, err := (&integration.ClaudeCodeIntegration{}).Install(integration.SSEEntry(4000))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".claude", "settings.json"), path)
	assert.Equal(t, "http://localhost:4000/sse", server(t, readJSON(t, path), "mcpServers")["url"])
}

func TestVSCodeIntegration(t *testing.T) {
	home := setupTestHome(t)

	path, err := (&integration.VSCodeIntegration{}).Install(integration.StdioEntry("course-catalog", "catalog.toml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".vscode", "mcp.json"), path)

	entry := server(t, readJSON(t, path), "servers")
	assert.Equal(t, "stdio", entry["type"])
	assert.Equal(t, "course-catalog", entry["command"])
	env := entry["env"].(map[string]any)
	assert.True(t, filepath.IsAbs(env["CATALOG_PATH"].(string)))
}

func TestGeminiIntegration(t *testing.T) {
	home := setupTestHome(t)

	path, err := (&integration.GeminiIntegration{}).Install(integration.SSEEntry(3001))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".gemini", "settings.json"), path)
	assert.Equal(t, "sse", server(t, readJSON(t, path), "mcpServers")["type"])
}

func TestCodexIntegration(t *testing.T) {
	home := setupTestHome(t)

	path, err := (&integration.CodexIntegration{}).Install(integration.StdioEntry("course-catalog", ""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".codex", "config.toml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var config map[string]any
	require.NoError(t, toml.Unmarshal(data, &config))
	assert.Equal(t, "course-catalog", server(t, config, "mcp_servers")["command"])

	_, err = (&integration.CodexIntegration{}).Install(integration.SSEEntry(3001))
	assert.ErrorIs(t, err, integration.ErrUnsupportedTransport)
}

func TestZedIntegration(t *testing.T) {
	home := setupTestHome(t)

	path, err := (&integration.ZedIntegration{}).Install(integration.SSEEntry(3001))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "zed", "settings.json"), path)
	assert.Equal(t, "http://localhost:3001/sse", server(t, readJSON(t, path), "context_servers")["url"])
}

func TestInstallRejectsCorruptConfig(t *testing.T) {
	home := setupTestHome(t)
	path := filepath.Join(home, ".gemini", "settings.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := (&integration.GeminiIntegration{}).Install(integration.SSEEntry(3001))
	assert.Error(t, err)
}
