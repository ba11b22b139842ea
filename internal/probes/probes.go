// Package probes provides the typed capability-check variants and the
// builder that turns a declarative manifest spec into a runnable probe.
package probes

import (
	"fmt"
	"reflect"

	"github.com/WebReflection/header-snippets/internal/core/domain"
	"go.trai.ch/zerr"
)

// Property returns a probe satisfied when name is defined and truthy.
func Property(name domain.InternedString) domain.Probe {
	return func(env *domain.Environment) domain.Outcome {
		if v, ok := env.Lookup(name); ok && domain.Truthy(v) {
			return domain.Satisfied()
		}
		return domain.Unsatisfied()
	}
}

// AllOf returns a conjunctive probe: every sub-probe must be satisfied, and
// evaluation short-circuits on the first miss. The first non-satisfied
// outcome is returned as-is, so an Errored sub-probe stays Errored.
func AllOf(ps ...domain.Probe) domain.Probe {
	return func(env *domain.Environment) domain.Outcome {
		for _, p := range ps {
			if out := p(env); out.Missing() {
				return out
			}
		}
		return domain.Satisfied()
	}
}

// AllNames is the conjunctive property variant: every named capability must
// be defined and truthy.
func AllNames(names ...domain.InternedString) domain.Probe {
	ps := make([]domain.Probe, len(names))
	for i, name := range names {
		ps[i] = Property(name)
	}
	return AllOf(ps...)
}

// ConstructVerify returns a construct-and-verify probe. The value bound to
// name is passed through construct and the result through verify; if either
// step fails or panics, the broken capability is removed from the
// environment before the outcome is reported, so later checks do not see a
// partially functional implementation. An undefined name is a plain miss
// with nothing to remove.
func ConstructVerify(
	name domain.InternedString,
	construct func(value any) (any, error),
	verify func(instance any) error,
) domain.Probe {
	return func(env *domain.Environment) (out domain.Outcome) {
		value, ok := env.Lookup(name)
		if !ok {
			return domain.Unsatisfied()
		}

		defer func() {
			if r := recover(); r != nil {
				env.Remove(name)
				out = domain.Errored(zerr.With(zerr.New(fmt.Sprintf("probe panicked: %v", r)), "capability", name.String()))
			}
		}()

		instance, err := construct(value)
		if err != nil {
			env.Remove(name)
			return domain.Errored(zerr.With(zerr.Wrap(err, "capability construction failed"), "capability", name.String()))
		}
		if err := verify(instance); err != nil {
			env.Remove(name)
			return domain.Errored(zerr.With(zerr.Wrap(err, "capability verification failed"), "capability", name.String()))
		}
		return domain.Satisfied()
	}
}

// Roundtrip returns a construct-and-verify probe for codec capabilities:
// the capability value must implement domain.Codec and round-trip sample
// through Encode and Decode unchanged.
func Roundtrip(name domain.InternedString, sample any) domain.Probe {
	return ConstructVerify(name,
		func(value any) (any, error) {
			codec, ok := value.(domain.Codec)
			if !ok {
				return nil, zerr.New("capability value is not a codec")
			}
			return codec, nil
		},
		func(instance any) error {
			codec := instance.(domain.Codec)
			data, err := codec.Encode(sample)
			if err != nil {
				return zerr.Wrap(err, "encode failed")
			}
			decoded, err := codec.Decode(data)
			if err != nil {
				return zerr.Wrap(err, "decode failed")
			}
			if !reflect.DeepEqual(decoded, sample) {
				return zerr.New("round-trip mismatch")
			}
			return nil
		},
	)
}

// Fixed returns the cached-flag variant: a probe that reads the
// startup-computed baseline and never the live environment.
func Fixed(base domain.Baseline) domain.Probe {
	return func(_ *domain.Environment) domain.Outcome {
		if base.Present {
			return domain.Satisfied()
		}
		return domain.Unsatisfied()
	}
}

// roundtripSample is the value pushed through manifest-declared construct
// probes. Any comparable payload works; a small map exercises both encode
// and decode paths.
var roundtripSample any = map[string]any{"probe": "roundtrip"}

// Build resolves a declarative probe spec into a runnable probe. Registered
// specs are looked up in reg; baseline specs close over base.
func Build(reg *domain.Registry, base domain.Baseline, spec domain.ProbeSpec) (domain.Probe, error) {
	switch spec.Kind {
	case domain.KindProperty:
		if len(spec.Names) == 0 {
			return nil, domain.ErrEmptyProbe
		}
		if len(spec.Names) == 1 {
			return Property(spec.Names[0]), nil
		}
		return AllNames(spec.Names...), nil
	case domain.KindAll:
		if len(spec.Names) == 0 {
			return nil, domain.ErrEmptyProbe
		}
		return AllNames(spec.Names...), nil
	case domain.KindConstruct:
		if len(spec.Names) != 1 {
			return nil, domain.ErrEmptyProbe
		}
		return Roundtrip(spec.Names[0], roundtripSample), nil
	case domain.KindBaseline:
		return Fixed(base), nil
	case domain.KindRegistered:
		return reg.Resolve(spec.Ref)
	default:
		return nil, zerr.With(domain.ErrUnknownProbeKind, "kind", string(spec.Kind))
	}
}
