package domain

import "go.trai.ch/zerr"

// Manifest describes one gating run: the capabilities the host starts with,
// the ordered list of gates to evaluate, and the optional baseline
// capability whose presence is computed once at startup.
type Manifest struct {
	Version  string
	Baseline InternedString
	Host     map[string]any
	Gates    []Gate
}

// Validate checks the structural rules a manifest must satisfy before a run.
func (m *Manifest) Validate() error {
	seen := make(map[InternedString]bool, len(m.Gates))
	for _, g := range m.Gates {
		if g.Capability.String() == "" {
			return ErrMissingCapability
		}
		if seen[g.Capability] {
			return zerr.With(ErrDuplicateGate, "capability", g.Capability.String())
		}
		seen[g.Capability] = true

		if g.Fallback.String() == "" {
			return zerr.With(ErrMissingFallback, "capability", g.Capability.String())
		}
		if err := m.validateProbe(g); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) validateProbe(g Gate) error {
	switch g.Probe.Kind {
	case KindProperty, KindAll:
		if len(g.Probe.Names) == 0 {
			return zerr.With(ErrEmptyProbe, "capability", g.Capability.String())
		}
	case KindConstruct:
		if len(g.Probe.Names) != 1 {
			return zerr.With(ErrEmptyProbe, "capability", g.Capability.String())
		}
	case KindBaseline:
		if m.Baseline.String() == "" {
			return zerr.With(ErrNoBaseline, "capability", g.Capability.String())
		}
	case KindRegistered:
		if g.Probe.Ref.String() == "" {
			return zerr.With(ErrEmptyProbe, "capability", g.Capability.String())
		}
	default:
		return zerr.With(zerr.With(ErrUnknownProbeKind, "kind", string(g.Probe.Kind)),
			"capability", g.Capability.String())
	}
	return nil
}
