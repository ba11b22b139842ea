// Package gate implements the capability gate engine.
//
// A gate decides, synchronously and exactly once, whether the environment
// already satisfies a capability; if not, it triggers exactly one fallback
// load, spliced into the stream so that every later gate observes the
// fallback's effect before its own probe runs.
package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/WebReflection/header-snippets/internal/core/domain"
	"github.com/WebReflection/header-snippets/internal/core/ports"
	"github.com/WebReflection/header-snippets/internal/engine/stream"
	"github.com/WebReflection/header-snippets/internal/probes"
	"go.trai.ch/zerr"
)

// Status represents the status of a gate.
type Status string

const (
	// StatusPending indicates the gate has not been evaluated yet.
	StatusPending Status = "Pending"
	// StatusSatisfied indicates the probe found the capability present.
	StatusSatisfied Status = "Satisfied"
	// StatusLoaded indicates the capability was missing and its fallback was loaded.
	StatusLoaded Status = "Loaded"
	// StatusFailed indicates the fallback load itself failed.
	StatusFailed Status = "Failed"
)

// Runner evaluates the gates of a manifest over an insertion stream.
type Runner struct {
	loader    ports.Loader
	telemetry ports.Telemetry
	logger    ports.Logger

	mu     sync.RWMutex
	status map[domain.InternedString]Status
}

// NewRunner creates a new Runner with the given loader, telemetry and logger.
func NewRunner(loader ports.Loader, telemetry ports.Telemetry, logger ports.Logger) *Runner {
	return &Runner{
		loader:    loader,
		telemetry: telemetry,
		logger:    logger,
		status:    make(map[domain.InternedString]Status),
	}
}

// Run evaluates every gate of the manifest in order against env. The
// baseline must have been computed from env before any gate runs; it is
// never recomputed here.
func (r *Runner) Run(
	ctx context.Context,
	manifest *domain.Manifest,
	reg *domain.Registry,
	env *domain.Environment,
	base domain.Baseline,
) error {
	s := stream.New()
	for _, g := range manifest.Gates {
		r.setStatus(g.Capability, StatusPending)
		s.Append("gate:"+g.Capability.String(), r.gateTask(g, reg, env, base))
	}
	return s.Run(ctx)
}

// Status returns the current status of the gate for capability.
func (r *Runner) Status(capability domain.InternedString) Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status[capability]
}

// Statuses returns a snapshot of all gate statuses keyed by capability name.
func (r *Runner) Statuses() map[string]Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[string]Status, len(r.status))
	for capability, st := range r.status {
		snapshot[capability.String()] = st
	}
	return snapshot
}

func (r *Runner) setStatus(capability domain.InternedString, st Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[capability] = st
}

func (r *Runner) gateTask(
	g domain.Gate,
	reg *domain.Registry,
	env *domain.Environment,
	base domain.Baseline,
) stream.Task {
	return func(ctx context.Context, ip *stream.Insertion) error {
		_, vtx := r.telemetry.Record(ctx, "gate "+g.Capability.String())

		probe, err := probes.Build(reg, base, g.Probe)
		if err != nil {
			// A spec that cannot be built is a manifest defect, not a
			// missing capability.
			vtx.Complete(err)
			return zerr.With(zerr.Wrap(err, "cannot build probe"), "capability", g.Capability.String())
		}

		out := evaluate(probe, env)
		if !out.Missing() {
			r.setStatus(g.Capability, StatusSatisfied)
			vtx.Cached()
			vtx.Complete(nil)
			r.logger.Info("capability satisfied: " + g.Capability.String())
			return nil
		}

		// A probe error is indistinguishable from a plain miss; it is
		// logged and swallowed here, never surfaced to the caller.
		if out.State == domain.StateErrored {
			r.logger.Warn(fmt.Sprintf("probe for %s errored, treating as missing: %v", g.Capability, out.Err))
		}

		insertErr := ip.Insert("load:"+g.Fallback.String(), r.loadTask(g, env))
		vtx.Complete(nil)
		return insertErr
	}
}

func (r *Runner) loadTask(g domain.Gate, env *domain.Environment) stream.Task {
	return func(ctx context.Context, _ *stream.Insertion) error {
		_, vtx := r.telemetry.Record(ctx, "load "+g.Fallback.String())

		shim, err := r.loader.Load(ctx, g.Fallback)
		if err != nil {
			// Failure of the load mechanism itself is outside the gate's
			// responsibility and propagates natively.
			r.setStatus(g.Capability, StatusFailed)
			vtx.Complete(err)
			wrapped := zerr.With(zerr.Wrap(err, "fallback load failed"), "capability", g.Capability.String())
			return zerr.With(wrapped, "resource", g.Fallback.String())
		}

		shim.Install(env, g.Capability)
		r.setStatus(g.Capability, StatusLoaded)
		vtx.Complete(nil)
		r.logger.Info("capability loaded: " + g.Capability.String())
		return nil
	}
}

// evaluate runs the probe exactly once, converting a panic into an Errored
// outcome so that nothing raised during evaluation escapes the gate.
func evaluate(probe domain.Probe, env *domain.Environment) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.Errored(zerr.New(fmt.Sprintf("probe panicked: %v", r)))
		}
	}()
	return probe(env)
}
