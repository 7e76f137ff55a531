package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/course-catalog-mcp/catalog/internal/json"
)

// ErrUnsupportedFormat is returned for catalog files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Format identifies the encoding of a catalog file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// File is the top-level structure of a catalog file.
type File struct {
	Courses []Course `json:"courses" yaml:"courses" toml:"courses"`
}

// FormatOf picks a format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads the courses stored at path without validating them.
func LoadFile(path string) ([]Course, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	courses, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return courses, nil
}

// Decode parses catalog file contents in the given format.
func Decode(data []byte, format Format) ([]Course, error) {
	var file File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return file.Courses, nil
}

// Encode renders courses as a catalog file in the given format.
func Encode(courses []Course, format Format) ([]byte, error) {
	file := File{Courses: courses}
	switch format {
	case FormatYAML:
		return yaml.Marshal(file)
	case FormatTOML:
		return toml.Marshal(file)
	case FormatJSON:
		return json.MarshalIndent(file, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
