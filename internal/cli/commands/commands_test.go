package commands

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-catalog-mcp/catalog/internal/api"
	"github.com/course-catalog-mcp/catalog/internal/cli/errors"
	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
	"github.com/course-catalog-mcp/catalog/internal/json"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := ExecuteArgs(append(args, "--no-color"), &out, &errOut)
	return out.String(), errOut.String(), err
}

func decodeIDs(t *testing.T, out string) []string {
	t.Helper()
	var courses []catalog.Course
	require.NoError(t, json.Unmarshal([]byte(out), &courses))
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestSearchCommandJSON(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"everything", []string{"search"}, []string{"1", "2", "3", "4", "5"}},
		{"keywords", []string{"search", "machine", "learning"}, []string{"1"}},
		{"query flag wins", []string{"search", "--query", "react", "ignored"}, []string{"5"}},
		{"subject and level", []string{"search", "-s", "Computer Science", "-l", "intermediate"}, []string{"3", "5"}},
		{"duration", []string{"search", "--duration", "8"}, []string{"1", "5"}},
		{"zero duration", []string{"search", "--duration", "0"}, []string{"1", "2", "3", "4", "5"}},
		{"provider", []string{"search", "--provider", "nonexistent"}, []string{}},
		{"inferred search", []string{"python"}, []string{"2"}},
		{"inferred search after flags", []string{"--transport", "direct", "--raw=false", "python"}, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append(tt.args, "--json")...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decodeIDs(t, out))
		})
	}
}

func TestSearchCommandText(t *testing.T) {
	out, _, err := execute(t, "search", "--subject", "mathematics")
	require.NoError(t, err)
	assert.Contains(t, out, "Calculus I")
	assert.Contains(t, out, "1 course(s) found")
}

func TestSearchCommandRaw(t *testing.T) {
	out, _, err := execute(t, "--raw", "search", "--level", "advanced")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "2"`)
	assert.Contains(t, out, `"url": "https://edx.org/course/python-adv"`)
}

func TestSearchCommandMarkdown(t *testing.T) {
	out, _, err := execute(t, "search", "--markdown", "--provider", "Coursera")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "```json\n["), out)
	assert.Contains(t, out, `"id": "1"`)
	assert.Contains(t, out, "\n```\n")
}

func TestSearchCommandCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.yaml")
	body := `courses:
  - id: k8s
    title: Kubernetes Basics
    description: Pods and deployments.
    instructor: Kay Ops
    duration: 3
    level: beginner
    subject: Cloud
    provider: Udemy
    url: https://example.com/k8s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	out, _, err := execute(t, "--json", "--catalog", path, "search", "--provider", "udemy")
	require.NoError(t, err)
	assert.Equal(t, []string{"k8s"}, decodeIDs(t, out))
}

func TestToolsCommand(t *testing.T) {
	out, _, err := execute(t, "--raw", "tools")
	require.NoError(t, err)
	assert.Equal(t, api.ToolSearchCourses+"\n", out)

	out, _, err = execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, api.ToolSearchCourses)
}

func TestScenarioCommand(t *testing.T) {
	out, _, err := execute(t, "scenario", filepath.Join("..", "scenario", "testdata", "sample.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario passed")
}

func TestStatusCommand(t *testing.T) {
	out, _, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, api.ServerName)
	assert.Contains(t, out, api.ServerVersion)
}

func TestStatusCommandSSE(t *testing.T) {
	ts := httptest.NewServer(api.NewGateway(api.NewCatalogServer(catalog.Sample()), api.GatewayOptions{}))
	t.Cleanup(ts.Close)

	out, _, err := execute(t, "--json", "--transport", "sse", "--url", ts.URL+api.SSEPath, "status")
	require.NoError(t, err)

	var status Status
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, api.ServerName, status.Server)
	assert.Equal(t, []string{api.ToolSearchCourses}, status.Tools)
	require.NotNil(t, status.Health)
	assert.Equal(t, "ok", status.Health.Status)
}

func TestCommandErrors(t *testing.T) {
	_, errOut, err := execute(t, "--transport", "smoke-signal", "tools")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error [invalid-args]")

	_, errOut, err = execute(t, "--transport", "sse", "--url", "http://127.0.0.1:1/sse", "--timeout", "2000", "tools")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error [")

	_, _, err = execute(t, "scenario")
	require.Error(t, err)

	_, errOut, err = execute(t, "--catalog", filepath.Join(t.TempDir(), "nope.yaml"), "tools")
	require.Error(t, err)
	var classified errors.ClassifiedError
	require.ErrorAs(t, err, &classified)
	assert.NotEmpty(t, errOut)
}

func TestInstallCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("APPDATA", "")

	out, _, err := execute(t, "install", "cursor", "gemini", "--sse", "--port", "4100")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered course-catalog in cursor")
	assert.Contains(t, out, "Registered course-catalog in gemini")

	data, err := os.ReadFile(filepath.Join(home, ".cursor", "mcp.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://localhost:4100/sse")

	_, errOut, err := execute(t, "install", "notepad")
	require.Error(t, err)
	assert.Contains(t, errOut, "unknown client")
}
