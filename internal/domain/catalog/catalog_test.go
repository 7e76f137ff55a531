package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(courses []catalog.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func TestSample(t *testing.T) {
	c := catalog.Sample()

	assert.Equal(t, 5, c.Len())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(c.Courses()))

	ml := c.Courses()[0]
	assert.Equal(t, "Introduction to Machine Learning", ml.Title)
	assert.Equal(t, 8, ml.Duration)
}

func TestCoursesReturnsIndependentCopy(t *testing.T) {
	c := catalog.Sample()

	first := c.Courses()
	first[0].Title = "mutated"
	_ = append(first[:1], first[2:]...)

	second := c.Courses()
	assert.Len(t, second, 5)
	assert.Equal(t, "Introduction to Machine Learning", second[0].Title)
}

func TestNewCopiesInput(t *testing.T) {
	input := []catalog.Course{
		{ID: "a", Title: "A", Description: "d", Instructor: "i", Duration: 1, Level: "beginner", Subject: "s", Provider: "p", URL: "https://a.example"},
	}
	c, err := catalog.New(input)
	require.NoError(t, err)

	input[0].Title = "changed"
	assert.Equal(t, "A", c.Courses()[0].Title)
}

func TestNewRejectsInvalidCourses(t *testing.T) {
	_, err := catalog.New([]catalog.Course{{ID: "x"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrInvalidCatalog))
}

func TestOpen(t *testing.T) {
	t.Run("empty path uses sample", func(t *testing.T) {
		c, err := catalog.Open("")
		require.NoError(t, err)
		assert.Equal(t, 5, c.Len())
	})

	for _, name := range []string{"courses.yaml", "courses.toml", "courses.json"} {
		t.Run(name, func(t *testing.T) {
			c, err := catalog.Open(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, []string{"go-101", "stats-201"}, ids(c.Courses()))

			stats := c.Courses()[1]
			assert.Equal(t, 9, stats.Duration)
			assert.Equal(t, "edX", stats.Provider)
		})
	}

	t.Run("invalid file", func(t *testing.T) {
		_, err := catalog.Open(filepath.Join("testdata", "invalid.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := catalog.Open("courses.csv")
		assert.ErrorIs(t, err, catalog.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Open(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	courses := catalog.Sample().Courses()

	for _, format := range []catalog.Format{catalog.FormatYAML, catalog.FormatTOML, catalog.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := catalog.Encode(courses, format)
			require.NoError(t, err)

			decoded, err := catalog.Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, courses, decoded)
		})
	}
}
