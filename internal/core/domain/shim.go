package domain

// Shim is a decoded fallback payload: the capability it provides and the
// value to bind for it. The wire format of the resource it came from is the
// loader's concern; the engine only ever sees a Shim.
type Shim struct {
	Capability InternedString
	Value      any
}

// Install defines the shim's capability in env. Shims declaring no
// capability of their own are installed under fallback instead, so a gate
// always ends up defining the capability it guarded.
func (s Shim) Install(env *Environment, fallback InternedString) {
	name := s.Capability
	if name.String() == "" {
		name = fallback
	}
	env.Define(name, s.Value)
}
