package api

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/course-catalog-mcp/catalog/internal/domain/search"
)

// Argument names of the search_courses tool.
const (
	ArgQuery    = "query"
	ArgSubject  = "subject"
	ArgLevel    = "level"
	ArgDuration = "duration"
	ArgProvider = "provider"
)

// ArgumentError reports a tool argument of the wrong type.
type ArgumentError struct {
	Name     string
	Expected string
	Got      any
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: expected %s, got %T", e.Name, e.Expected, e.Got)
}

// CriteriaFromArguments converts raw tool arguments into search criteria.
// Missing or null arguments are absent, and so are empty strings and a zero
// duration. Unknown argument names are ignored.
func CriteriaFromArguments(args map[string]any) (search.Criteria, error) {
	var c search.Criteria
	var err error

	if c.Query, err = stringArg(args, ArgQuery); err != nil {
		return search.Criteria{}, err
	}
	if c.Subject, err = stringArg(args, ArgSubject); err != nil {
		return search.Criteria{}, err
	}
	if c.Level, err = stringArg(args, ArgLevel); err != nil {
		return search.Criteria{}, err
	}
	if c.Provider, err = stringArg(args, ArgProvider); err != nil {
		return search.Criteria{}, err
	}
	if c.Duration, err = numberArg(args, ArgDuration); err != nil {
		return search.Criteria{}, err
	}
	return c, nil
}

func stringArg(args map[string]any, name string) (search.Optional[string], error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return search.None[string](), nil
	}
	s, ok := raw.(string)
	if !ok {
		return search.None[string](), &ArgumentError{Name: name, Expected: "string", Got: raw}
	}
	return search.Truthy(s), nil
}

func numberArg(args map[string]any, name string) (search.Optional[float64], error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return search.None[float64](), nil
	}
	switch raw.(type) {
	case string, bool:
		return search.None[float64](), &ArgumentError{Name: name, Expected: "number", Got: raw}
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return search.None[float64](), &ArgumentError{Name: name, Expected: "number", Got: raw}
	}
	return search.Truthy(f), nil
}
