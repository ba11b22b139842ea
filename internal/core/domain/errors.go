package domain

import "go.trai.ch/zerr"

var (
	// ErrProbeAlreadyRegistered is returned when registering a probe under an id that is taken.
	ErrProbeAlreadyRegistered = zerr.New("probe already registered")

	// ErrProbeNotFound is returned when a manifest references a probe id that was never registered.
	ErrProbeNotFound = zerr.New("probe not found")

	// ErrMissingCapability is returned when a gate declares no capability name.
	ErrMissingCapability = zerr.New("gate has no capability name")

	// ErrMissingFallback is returned when a gate declares no fallback resource.
	ErrMissingFallback = zerr.New("gate has no fallback resource")

	// ErrDuplicateGate is returned when two gates guard the same capability.
	ErrDuplicateGate = zerr.New("duplicate gate for capability")

	// ErrEmptyProbe is returned when a probe spec is missing its operands.
	ErrEmptyProbe = zerr.New("probe spec has no operands")

	// ErrUnknownProbeKind is returned for a probe kind the engine does not know.
	ErrUnknownProbeKind = zerr.New("unknown probe kind")

	// ErrNoBaseline is returned when a baseline probe is used by a manifest that declares no baseline.
	ErrNoBaseline = zerr.New("manifest declares no baseline capability")

	// ErrStreamCorrupted is returned when an insertion point is used after its
	// task completed. The single-insertion-point model is deliberately not
	// composable; reusing a point elsewhere is rejected instead of reordered.
	ErrStreamCorrupted = zerr.New("stream corrupted: insertion point no longer current")

	// ErrGateExecutionFailed wraps any failure surfaced by a gating run.
	ErrGateExecutionFailed = zerr.New("gate execution failed")
)
