// Package catalog holds the course records served by the search tool.
package catalog

// Course is a single catalog entry. Field order is the wire order of the
// search_courses payload.
type Course struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Instructor  string `json:"instructor" yaml:"instructor" toml:"instructor"`

	// Duration is measured in weeks.
	Duration int `json:"duration" yaml:"duration" toml:"duration"`

	// Level is conventionally "beginner", "intermediate" or "advanced".
	Level    string `json:"level" yaml:"level" toml:"level"`
	Subject  string `json:"subject" yaml:"subject" toml:"subject"`
	Provider string `json:"provider" yaml:"provider" toml:"provider"`
	URL      string `json:"url" yaml:"url" toml:"url"`
}

// Conventional level values. Levels are not a closed set; anything else is
// accepted and only produces a validation warning.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)
