package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-catalog-mcp/catalog/internal/config"
	"github.com/course-catalog-mcp/catalog/internal/logger"
)

const catalogYAML = `courses:
  - id: go-101
    title: Go Fundamentals
    description: Types, interfaces and goroutines.
    instructor: Rob Example
    duration: 4
    level: beginner
    subject: Computer Science
    provider: Coursera
    url: https://example.com/go-101
`

func TestBootstrapSampleCatalog(t *testing.T) {
	settings := config.DefaultSettings()

	a, err := Bootstrap(settings)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Equal(t, 5, a.Catalog.Len())
	assert.NotNil(t, a.Server)
	assert.Nil(t, a.metricsServer)
}

func TestBootstrapCatalogFileAndLogDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "courses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0644))

	settings := config.DefaultSettings()
	settings.CatalogPath = path
	settings.LogDir = filepath.Join(dir, "logs")
	settings.LogLevel = "debug"

	a, err := Bootstrap(settings)
	require.NoError(t, err)
	defer logger.SetLevel(logger.LevelInfo)

	assert.Equal(t, 1, a.Catalog.Len())
	logPath := logger.GetLogFilePath()
	assert.True(t, strings.HasPrefix(logPath, settings.LogDir))

	require.NoError(t, a.Close(context.Background()))
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Loaded 1 course(s)")
}

func TestBootstrapErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Settings)
		errMsg string
	}{
		{
			name:   "unknown log level",
			mutate: func(s *config.Settings) { s.LogLevel = "loud" },
			errMsg: "loud",
		},
		{
			name:   "missing catalog",
			mutate: func(s *config.Settings) { s.CatalogPath = filepath.Join(t.TempDir(), "none.yaml") },
			errMsg: "failed to open catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.DefaultSettings()
			tt.mutate(&settings)

			_, err := Bootstrap(settings)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBootstrapMetricsListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	settings := config.DefaultSettings()
	settings.Host = "127.0.0.1"
	settings.MetricsPort = port

	a, err := Bootstrap(settings)
	require.NoError(t, err)
	defer a.Close(context.Background())

	resp, err := http.Get("http://" + settings.MetricsAddr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "course_catalog_catalog_courses 5")
}
