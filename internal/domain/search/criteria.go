// Package search filters a course catalog by optional criteria.
package search

import (
	"fmt"
	"strings"
)

// Optional is a value that may be absent.
type Optional[T comparable] struct {
	value T
	set   bool
}

// Some returns a present value.
func Some[T comparable](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent value.
func None[T comparable]() Optional[T] {
	return Optional[T]{}
}

// Truthy returns an absent value for the zero value of T and a present one
// otherwise. Empty strings and zero bounds are therefore "not supplied".
func Truthy[T comparable](v T) Optional[T] {
	var zero T
	if v == zero {
		return None[T]()
	}
	return Some(v)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Present reports whether a value was supplied.
func (o Optional[T]) Present() bool {
	return o.set
}

func (o Optional[T]) String() string {
	if !o.set {
		return "<absent>"
	}
	return fmt.Sprint(o.value)
}

// Criteria are the filters of a single query. Every field is optional and
// all present fields must match.
type Criteria struct {
	// Query is matched as a case-insensitive substring of title,
	// description or instructor.
	Query Optional[string]

	Subject  Optional[string]
	Level    Optional[string]
	Provider Optional[string]

	// Duration is an inclusive upper bound in weeks.
	Duration Optional[float64]
}

// active returns the string value when it is present and non-empty.
func active(o Optional[string]) (string, bool) {
	v, ok := o.Get()
	return v, ok && v != ""
}

func activeBound(o Optional[float64]) (float64, bool) {
	v, ok := o.Get()
	return v, ok && v != 0
}

// IsEmpty reports whether no predicate would be applied.
func (c Criteria) IsEmpty() bool {
	_, q := active(c.Query)
	_, s := active(c.Subject)
	_, l := active(c.Level)
	_, p := active(c.Provider)
	_, d := activeBound(c.Duration)
	return !(q || s || l || p || d)
}

func (c Criteria) String() string {
	var parts []string
	add := func(name string, present bool, value string) {
		if present {
			parts = append(parts, fmt.Sprintf("%s=%q", name, value))
		}
	}
	q, ok := active(c.Query)
	add("query", ok, q)
	s, ok := active(c.Subject)
	add("subject", ok, s)
	l, ok := active(c.Level)
	add("level", ok, l)
	if d, ok := activeBound(c.Duration); ok {
		parts = append(parts, fmt.Sprintf("duration<=%g", d))
	}
	p, ok := active(c.Provider)
	add("provider", ok, p)

	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}
