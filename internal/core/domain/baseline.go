package domain

// Baseline is the cached-flag variant made explicit. The original snippets
// set a global boolean once, before any other gate ran; here the flag is a
// value computed exactly once from the initial environment and threaded into
// the probes that want it. It is never recomputed: a fallback that later
// defines the underlying capability does not change an already-computed
// baseline.
type Baseline struct {
	Capability InternedString
	Present    bool
}

// ComputeBaseline evaluates the baseline capability against env.
// Call it once, at startup, before any gate runs. An empty capability name
// yields an absent baseline.
func ComputeBaseline(env *Environment, capability InternedString) Baseline {
	b := Baseline{Capability: capability}
	if capability.String() == "" {
		return b
	}
	if v, ok := env.Lookup(capability); ok {
		b.Present = Truthy(v)
	}
	return b
}
