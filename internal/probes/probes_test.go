package probes_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/WebReflection/header-snippets/internal/core/domain"
	"github.com/WebReflection/header-snippets/internal/probes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(s string) domain.InternedString { return domain.NewInternedString(s) }

func TestProperty(t *testing.T) {
	env := domain.NewEnvironment(map[string]any{
		"dom.query": true,
		"url.parse": "",
	})

	assert.Equal(t, domain.StateSatisfied, probes.Property(name("dom.query"))(env).State)
	// defined but falsy counts as absent
	assert.Equal(t, domain.StateUnsatisfied, probes.Property(name("url.parse"))(env).State)
	assert.Equal(t, domain.StateUnsatisfied, probes.Property(name("json.codec"))(env).State)
}

func TestAllNames_ShortCircuit(t *testing.T) {
	env := domain.NewEnvironment(map[string]any{
		"a": true,
		"b": true,
	})

	assert.Equal(t, domain.StateSatisfied, probes.AllNames(name("a"), name("b"))(env).State)
	assert.Equal(t, domain.StateUnsatisfied, probes.AllNames(name("a"), name("c"))(env).State)
}

func TestAllOf_PreservesErroredOutcome(t *testing.T) {
	failing := func(_ *domain.Environment) domain.Outcome {
		return domain.Errored(errors.New("boom"))
	}
	notReached := func(_ *domain.Environment) domain.Outcome {
		t.Fatal("probe after a miss must not run")
		return domain.Satisfied()
	}

	out := probes.AllOf(failing, notReached)(domain.NewEnvironment(nil))
	assert.Equal(t, domain.StateErrored, out.State)
	assert.Error(t, out.Err)
}

func TestConstructVerify_RemovesBrokenCapability(t *testing.T) {
	env := domain.NewEnvironment(map[string]any{"json.codec": "not a codec"})
	capName := name("json.codec")

	probe := probes.ConstructVerify(capName,
		func(any) (any, error) { return nil, errors.New("cannot construct") },
		func(any) error { return nil },
	)

	out := probe(env)
	assert.Equal(t, domain.StateErrored, out.State)
	_, ok := env.Lookup(capName)
	assert.False(t, ok, "broken capability must be removed from the environment")
}

func TestConstructVerify_VerifyFailureRemoves(t *testing.T) {
	env := domain.NewEnvironment(map[string]any{"json.codec": 42})
	capName := name("json.codec")

	probe := probes.ConstructVerify(capName,
		func(v any) (any, error) { return v, nil },
		func(any) error { return errors.New("behavior mismatch") },
	)

	out := probe(env)
	assert.Equal(t, domain.StateErrored, out.State)
	_, ok := env.Lookup(capName)
	assert.False(t, ok)
}

func TestConstructVerify_PanicIsRecovered(t *testing.T) {
	env := domain.NewEnvironment(map[string]any{"json.codec": 42})
	capName := name("json.codec")

	probe := probes.ConstructVerify(capName,
		func(any) (any, error) { panic("unexpected shape") },
		func(any) error { return nil },
	)

	out := probe(env)
	assert.Equal(t, domain.StateErrored, out.State)
	_, ok := env.Lookup(capName)
	assert.False(t, ok)
}

func TestConstructVerify_UndefinedIsPlainMiss(t *testing.T) {
	env := domain.NewEnvironment(nil)
	probe := probes.ConstructVerify(name("json.codec"),
		func(v any) (any, error) { return v, nil },
		func(any) error { return nil },
	)

	out := probe(env)
	assert.Equal(t, domain.StateUnsatisfied, out.State)
	assert.NoError(t, out.Err)
}

// jsonCodec implements domain.Codec over encoding/json.
type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Decode(data []byte) (any, error) {
	var v any
	err := json.Unmarshal(data, &v)
	return v, err
}

// lossyCodec decodes to a constant, so round-trips never match.
type lossyCodec struct{}

func (lossyCodec) Encode(any) ([]byte, error) { return []byte("x"), nil }
func (lossyCodec) Decode([]byte) (any, error) { return "constant", nil }

func TestRoundtrip(t *testing.T) {
	t.Run("working codec satisfies", func(t *testing.T) {
		env := domain.NewEnvironment(map[string]any{"json.codec": jsonCodec{}})
		out := probes.Roundtrip(name("json.codec"), map[string]any{"k": "v"})(env)
		assert.Equal(t, domain.StateSatisfied, out.State)
	})

	t.Run("lossy codec is evicted", func(t *testing.T) {
		env := domain.NewEnvironment(map[string]any{"json.codec": lossyCodec{}})
		out := probes.Roundtrip(name("json.codec"), map[string]any{"k": "v"})(env)
		assert.Equal(t, domain.StateErrored, out.State)
		_, ok := env.Lookup(name("json.codec"))
		assert.False(t, ok)
	})

	t.Run("non-codec value is evicted", func(t *testing.T) {
		env := domain.NewEnvironment(map[string]any{"json.codec": "just a string"})
		out := probes.Roundtrip(name("json.codec"), "sample")(env)
		assert.Equal(t, domain.StateErrored, out.State)
		_, ok := env.Lookup(name("json.codec"))
		assert.False(t, ok)
	})
}

func TestFixed_IgnoresLiveEnvironment(t *testing.T) {
	env := domain.NewEnvironment(nil)
	base := domain.ComputeBaseline(env, name("dom.query"))

	probe := probes.Fixed(base)
	assert.Equal(t, domain.StateUnsatisfied, probe(env).State)

	// A fallback defining the capability later does not change the
	// already-computed flag.
	env.Define(name("dom.query"), true)
	assert.Equal(t, domain.StateUnsatisfied, probe(env).State)
}

func TestBuild(t *testing.T) {
	env := domain.NewEnvironment(map[string]any{"a": true, "b": true})
	base := domain.Baseline{Capability: name("a"), Present: true}
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(name("custom"), func(_ *domain.Environment) domain.Outcome {
		return domain.Satisfied()
	}))

	cases := []struct {
		testName string
		spec     domain.ProbeSpec
		want     domain.OutcomeState
	}{
		{"property", domain.ProbeSpec{Kind: domain.KindProperty, Names: domain.NewInternedStrings([]string{"a"})}, domain.StateSatisfied},
		{"property multi", domain.ProbeSpec{Kind: domain.KindProperty, Names: domain.NewInternedStrings([]string{"a", "b"})}, domain.StateSatisfied},
		{"all miss", domain.ProbeSpec{Kind: domain.KindAll, Names: domain.NewInternedStrings([]string{"a", "c"})}, domain.StateUnsatisfied},
		{"baseline", domain.ProbeSpec{Kind: domain.KindBaseline}, domain.StateSatisfied},
		{"registered", domain.ProbeSpec{Kind: domain.KindRegistered, Ref: name("custom")}, domain.StateSatisfied},
	}

	for _, tc := range cases {
		t.Run(tc.testName, func(t *testing.T) {
			probe, err := probes.Build(reg, base, tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, probe(env).State)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := probes.Build(reg, base, domain.ProbeSpec{Kind: domain.ProbeKind("guesswork")})
		assert.ErrorIs(t, err, domain.ErrUnknownProbeKind)
	})

	t.Run("unregistered ref", func(t *testing.T) {
		_, err := probes.Build(reg, base, domain.ProbeSpec{Kind: domain.KindRegistered, Ref: name("missing")})
		assert.ErrorIs(t, err, domain.ErrProbeNotFound)
	})

	t.Run("empty operands", func(t *testing.T) {
		_, err := probes.Build(reg, base, domain.ProbeSpec{Kind: domain.KindProperty})
		assert.ErrorIs(t, err, domain.ErrEmptyProbe)
	})
}
