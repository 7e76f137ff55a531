package catalog

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the outcome of validating a list of courses.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Courses  int               `json:"courses"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

var conventionalLevels = map[string]bool{
	LevelBeginner:     true,
	LevelIntermediate: true,
	LevelAdvanced:     true,
}

// Validate checks courses against the catalog invariants: every field
// present, positive durations and unique identifiers.
func Validate(courses []Course) *ValidationResult {
	result := &ValidationResult{Courses: len(courses)}
	seen := make(map[string]int, len(courses))

	for i, c := range courses {
		prefix := fmt.Sprintf("courses[%d]", i)

		validateRequired(prefix, c, result)

		if c.Duration <= 0 {
			result.Errors = append(result.Errors, ValidationError{prefix + ".duration", fmt.Sprintf("must be a positive number of weeks, got %d", c.Duration)})
		}

		if c.ID != "" {
			if first, dup := seen[c.ID]; dup {
				result.Errors = append(result.Errors, ValidationError{prefix + ".id", fmt.Sprintf("duplicate id %q (first used by courses[%d])", c.ID, first)})
			} else {
				seen[c.ID] = i
			}
		}

		addWarnings(prefix, c, result)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateRequired(prefix string, c Course, result *ValidationResult) {
	fields := []struct {
		name  string
		value string
	}{
		{"id", c.ID},
		{"title", c.Title},
		{"description", c.Description},
		{"instructor", c.Instructor},
		{"level", c.Level},
		{"subject", c.Subject},
		{"provider", c.Provider},
		{"url", c.URL},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			result.Errors = append(result.Errors, ValidationError{prefix + "." + f.name, "required field is missing"})
		}
	}
}

func addWarnings(prefix string, c Course, result *ValidationResult) {
	if c.Level != "" && !conventionalLevels[strings.ToLower(c.Level)] {
		result.Warnings = append(result.Warnings, ValidationError{prefix + ".level", fmt.Sprintf("unconventional level %q", c.Level)})
	}
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			result.Warnings = append(result.Warnings, ValidationError{prefix + ".url", "should be an absolute URL"})
		}
	}
}

// ValidateFile loads and validates a single catalog file.
func ValidateFile(path string) (*ValidationResult, error) {
	courses, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(courses), nil
}

// ValidateDirectory validates every catalog file in dir, keyed by file name.
// Files with unsupported extensions are skipped.
func ValidateDirectory(dir string) (map[string]*ValidationResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	results := make(map[string]*ValidationResult)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}

		result, err := ValidateFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			results[entry.Name()] = &ValidationResult{
				Valid:  false,
				Errors: []ValidationError{{"file", err.Error()}},
			}
			continue
		}
		results[entry.Name()] = result
	}
	return results, nil
}
