package search

import (
	"strings"

	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
)

// predicate reports whether a course passes one criterion.
type predicate func(catalog.Course) bool

// predicates builds the active predicates of c in evaluation order.
func (c Criteria) predicates() []predicate {
	var preds []predicate

	if q, ok := active(c.Query); ok {
		q = strings.ToLower(q)
		preds = append(preds, func(course catalog.Course) bool {
			return strings.Contains(strings.ToLower(course.Title), q) ||
				strings.Contains(strings.ToLower(course.Description), q) ||
				strings.Contains(strings.ToLower(course.Instructor), q)
		})
	}
	if s, ok := active(c.Subject); ok {
		preds = append(preds, equalFold(s, func(course catalog.Course) string { return course.Subject }))
	}
	if l, ok := active(c.Level); ok {
		preds = append(preds, equalFold(l, func(course catalog.Course) string { return course.Level }))
	}
	if d, ok := activeBound(c.Duration); ok {
		preds = append(preds, func(course catalog.Course) bool {
			return float64(course.Duration) <= d
		})
	}
	if p, ok := active(c.Provider); ok {
		preds = append(preds, equalFold(p, func(course catalog.Course) string { return course.Provider }))
	}
	return preds
}

// equalFold matches a field by comparing lower-cased values.
func equalFold(want string, field func(catalog.Course) string) predicate {
	want = strings.ToLower(want)
	return func(course catalog.Course) bool {
		return strings.ToLower(field(course)) == want
	}
}

func matchAll(preds []predicate, course catalog.Course) bool {
	for _, p := range preds {
		if !p(course) {
			return false
		}
	}
	return true
}

// Filter returns the courses that satisfy c, in their original order. The
// result is always a new slice, even when every course matches, and is never
// nil. courses is not modified.
func Filter(c Criteria, courses []catalog.Course) []catalog.Course {
	preds := c.predicates()
	out := make([]catalog.Course, 0, len(courses))
	for _, course := range courses {
		if matchAll(preds, course) {
			out = append(out, course)
		}
	}
	return out
}

// Engine runs queries against a catalog snapshot.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine returns an engine bound to cat.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Search returns the matching courses in catalog order.
func (e *Engine) Search(c Criteria) []catalog.Course {
	return Filter(c, e.catalog.Courses())
}
