package domain

import "go.trai.ch/zerr"

// Probe is a typed capability check. It inspects the environment and returns
// an explicit Outcome; it must not mutate the environment except to Remove a
// capability it has proven broken.
type Probe func(env *Environment) Outcome

// Registry maps capability identifiers to typed probes. It replaces the
// original runtime name resolution on an ambient object: a manifest refers
// to a probe by id, and resolution failures are errors, not silent misses.
type Registry struct {
	probes map[InternedString]Probe
	order  []InternedString
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		probes: make(map[InternedString]Probe),
	}
}

// Add registers a probe under id.
// It returns an error if a probe with the same id already exists.
func (r *Registry) Add(id InternedString, p Probe) error {
	if _, exists := r.probes[id]; exists {
		return zerr.With(ErrProbeAlreadyRegistered, "probe_id", id.String())
	}
	r.probes[id] = p
	r.order = append(r.order, id)
	return nil
}

// Resolve returns the probe registered under id.
func (r *Registry) Resolve(id InternedString) (Probe, error) {
	p, ok := r.probes[id]
	if !ok {
		return nil, zerr.With(ErrProbeNotFound, "probe_id", id.String())
	}
	return p, nil
}

// IDs returns the registered probe ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	for i, id := range r.order {
		ids[i] = id.String()
	}
	return ids
}
