package app

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-catalog-mcp/catalog/internal/config"
	"github.com/course-catalog-mcp/catalog/internal/json"
	"github.com/course-catalog-mcp/catalog/internal/logger"
)

func newLogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	registerLogRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	require.NoError(t, logger.ClearLogs())
	return ts
}

func getLogs(t *testing.T, url string) []logger.LogEntry {
	t.Helper()
	resp, err := http.Get(url + "/logs")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var entries []logger.LogEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	return entries
}

func TestLogRoutesListAndClear(t *testing.T) {
	ts := newLogServer(t)

	logger.Infof("search_courses matched %d course(s)", 2)
	entries := getLogs(t, ts.URL)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "INFO", last.Level)
	assert.Equal(t, "search_courses matched 2 course(s)", last.Message)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/logs", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Empty(t, getLogs(t, ts.URL))
}

func TestLogRoutesStream(t *testing.T) {
	ts := newLogServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/logs/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// headers are flushed after Subscribe, so this entry reaches the stream
	logger.Warnf("catalog reload requested")

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, "data: "), line)

	var entry logger.LogEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "catalog reload requested", entry.Message)
}

func TestCloseEndsLogStreams(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	settings := config.DefaultSettings()
	settings.Host = "127.0.0.1"
	settings.MetricsPort = port

	a, err := Bootstrap(settings)
	require.NoError(t, err)

	resp, err := http.Get("http://" + settings.MetricsAddr() + "/logs/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, a.Close(ctx))
}
