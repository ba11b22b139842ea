package domain

// ProbeKind selects the shape of a capability check declared in a manifest.
type ProbeKind string

const (
	// KindProperty checks a single named capability is defined and truthy.
	KindProperty ProbeKind = "property"
	// KindAll checks several named capabilities conjunctively, short-circuit.
	KindAll ProbeKind = "all"
	// KindConstruct builds an instance from the capability value and verifies
	// its runtime behavior (a codec round-trip) before trusting it.
	KindConstruct ProbeKind = "construct"
	// KindBaseline reads the startup-computed baseline flag instead of
	// re-checking the live environment.
	KindBaseline ProbeKind = "baseline"
	// KindRegistered resolves a probe registered in code by id.
	KindRegistered ProbeKind = "registered"
)

// ProbeSpec is the declarative description of a probe in a manifest.
type ProbeSpec struct {
	Kind  ProbeKind
	Names []InternedString
	Ref   InternedString
}

// Gate binds exactly one capability to one probe and one fallback resource.
// When multiple independent capabilities can be missing, the manifest must
// declare one gate per capability: a single gate cannot batch fallbacks,
// because a later gate's probe has to observe an earlier gate's fallback.
type Gate struct {
	Capability InternedString
	Probe      ProbeSpec
	Fallback   InternedString
}
