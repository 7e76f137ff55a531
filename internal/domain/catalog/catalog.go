package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog is returned when a set of courses breaks a catalog invariant.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is an immutable, ordered snapshot of courses. It is safe for
// concurrent use because nothing can change it after New returns.
type Catalog struct {
	courses []Course
}

// New validates courses and returns a snapshot holding its own copy of them.
func New(courses []Course) (*Catalog, error) {
	result := Validate(courses)
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, result.Errors[0])
	}

	c := &Catalog{courses: make([]Course, len(courses))}
	copy(c.courses, courses)
	return c, nil
}

// Open returns the catalog stored at path, or the built-in sample catalog
// when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Sample(), nil
	}

	courses, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := New(courses)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Courses returns a copy of every course in catalog order.
func (c *Catalog) Courses() []Course {
	out := make([]Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}
