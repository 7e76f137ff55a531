// Package integration registers the course catalog server in the MCP
// configuration files of desktop clients and editors.
package integration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/course-catalog-mcp/catalog/internal/json"
)

// DefaultEntryName is the key the server is registered under.
const DefaultEntryName = "course-catalog"

// ErrUnsupportedTransport is returned by clients that cannot reach the
// server over the entry's transport.
var ErrUnsupportedTransport = errors.New("transport not supported by client")

// Entry describes how a client launches or reaches the server. A non-empty
// Command selects stdio; otherwise URL points at the SSE endpoint.
type Entry struct {
	Name    string
	Command string
	Args    []string
	Env     map[string]string
	URL     string
}

// StdioEntry launches command over stdio, serving catalogPath when set.
func StdioEntry(command string, catalogPath string) Entry {
	e := Entry{Name: DefaultEntryName, Command: command, Args: []string{}}
	if catalogPath != "" {
		if abs, err := filepath.Abs(catalogPath); err == nil {
			catalogPath = abs
		}
		e.Env = map[string]string{"CATALOG_PATH": catalogPath}
	}
	return e
}

// SSEEntry points at a local SSE server on port.
func SSEEntry(port int) Entry {
	return Entry{Name: DefaultEntryName, URL: fmt.Sprintf("http://localhost:%d/sse", port)}
}

// IsStdio reports whether the entry launches a process.
func (e Entry) IsStdio() bool {
	return e.Command != ""
}

// serverConfig is the mcpServers value most clients understand.
func (e Entry) serverConfig() map[string]any {
	if !e.IsStdio() {
		return map[string]any{
			"type": "sse",
			"url":  e.URL,
		}
	}
	cfg := map[string]any{
		"command": e.Command,
		"args":    e.Args,
	}
	if len(e.Env) > 0 {
		cfg["env"] = e.Env
	}
	return cfg
}

// Client is an MCP client whose configuration can be updated.
type Client interface {
	// Name is the identifier used on the command line.
	Name() string
	// Install writes e into the client's configuration and returns the file path.
	Install(e Entry) (string, error)
}

// Clients returns every supported client keyed by name.
func Clients() map[string]Client {
	all := []Client{
		&ClaudeIntegration{},
		&ClaudeCodeIntegration{},
		&CursorIntegration{},
		&VSCodeIntegration{},
		&ZedIntegration{},
		&GeminiIntegration{},
		&CodexIntegration{},
	}
	m := make(map[string]Client, len(all))
	for _, c := range all {
		m[c.Name()] = c
	}
	return m
}

// Names lists the supported client names in order.
func Names() []string {
	var names []string
	for name := range Clients() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a client by name.
func Lookup(name string) (Client, error) {
	c, ok := Clients()[name]
	if !ok {
		return nil, fmt.Errorf("unknown client %q (supported: %v)", name, Names())
	}
	return c, nil
}

// mergeJSONServer sets section[name] = value in the JSON file at path and
// keeps every other setting in the file.
func mergeJSONServer(path, section, name string, value any) error {
	config := map[string]any{}
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	servers, ok := config[section].(map[string]any)
	if !ok {
		servers = make(map[string]any)
		config[section] = servers
	}
	servers[name] = value

	newData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, newData, 0644)
}
