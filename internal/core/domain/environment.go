// Package domain contains the core model for capability gating.
package domain

import "slices"

// Environment is the root execution context made explicit: the namespace of
// capabilities the host provides, passed into whichever component needs it
// instead of being read from ambient global state.
//
// An Environment is confined to the stream goroutine during a run. Mutation
// follows the read-check-conditionally-delete-then-reassign discipline: a
// probe may Remove a broken capability, a fallback load Defines it again.
type Environment struct {
	values map[InternedString]any
}

// NewEnvironment creates an Environment seeded with the given capabilities.
func NewEnvironment(seed map[string]any) *Environment {
	values := make(map[InternedString]any, len(seed))
	for name, v := range seed {
		values[NewInternedString(name)] = v
	}
	return &Environment{values: values}
}

// Lookup returns the value bound to name and whether it is defined.
func (e *Environment) Lookup(name InternedString) (any, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Define binds a value to name, replacing any previous binding.
func (e *Environment) Define(name InternedString, value any) {
	e.values[name] = value
}

// Remove deletes the binding for name. Removing an undefined name is a no-op.
// A construct-and-verify probe uses this to evict a partially functional
// capability so later checks are not confused by it.
func (e *Environment) Remove(name InternedString) {
	delete(e.values, name)
}

// Names returns the defined capability names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return names
}

// Truthy reports whether a capability value counts as present. Go has no
// ambient truthiness, so the rule is pinned here once and shared by every
// probe variant: nil, false, empty strings and numeric zeros are absent,
// everything else is present.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
