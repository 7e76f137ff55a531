package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/course-catalog-mcp/catalog/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := metrics.NewRecorder()

	r.SetCatalogSize(5)
	r.ObserveCall("search_courses", metrics.StatusOK, 50*time.Microsecond, 2)
	r.ObserveCall("search_courses", metrics.StatusOK, 20*time.Microsecond, 0)
	r.ObserveCall("search_courses", metrics.StatusError, 0, 0)

	count, err := testutil.GatherAndCount(r.Registry(), "course_catalog_tool_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), `course_catalog_tool_calls_total{status="ok",tool="search_courses"} 2`)
	assert.Contains(t, string(body), `course_catalog_tool_calls_total{status="error",tool="search_courses"} 1`)
	assert.Contains(t, string(body), "course_catalog_catalog_courses 5")
	assert.Contains(t, string(body), "course_catalog_search_matches_count 2")
}

func TestNilRecorder(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.SetCatalogSize(3)
		r.ObserveCall("search_courses", metrics.StatusOK, time.Millisecond, 1)
	})
}
