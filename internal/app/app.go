// Package app implements the application layer for the gate engine.
package app

import (
	"context"
	"errors"

	"github.com/WebReflection/header-snippets/internal/core/domain"
	"github.com/WebReflection/header-snippets/internal/core/ports"
	"github.com/WebReflection/header-snippets/internal/engine/gate"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	runner    *gate.Runner
	logger    ports.Logger
	registry  *domain.Registry
}

// New creates a new App instance.
func New(manifests ports.ManifestLoader, runner *gate.Runner, logger ports.Logger) *App {
	return &App{
		manifests: manifests,
		runner:    runner,
		logger:    logger,
		registry:  domain.NewRegistry(),
	}
}

// RegisterProbe registers a typed probe for manifests using registered-kind
// probe specs.
func (a *App) RegisterProbe(id string, p domain.Probe) error {
	return a.registry.Add(domain.NewInternedString(id), p)
}

// Run loads the manifest from dir and evaluates its gates in order. The
// returned statuses are keyed by capability name and reflect however far
// the run got, also when it failed.
func (a *App) Run(ctx context.Context, dir string) (map[string]gate.Status, error) {
	manifest, err := a.manifests.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	// The root context and the baseline flag are built exactly once,
	// before any gate runs.
	env := domain.NewEnvironment(manifest.Host)
	base := domain.ComputeBaseline(env, manifest.Baseline)

	if err := a.runner.Run(ctx, manifest, a.registry, env, base); err != nil {
		return a.runner.Statuses(), errors.Join(domain.ErrGateExecutionFailed, err)
	}

	a.logger.Info("all gates settled")
	return a.runner.Statuses(), nil
}

// List loads and validates the manifest from dir without evaluating it.
func (a *App) List(dir string) (*domain.Manifest, error) {
	manifest, err := a.manifests.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	return manifest, nil
}

// Components bundles the wired application objects handed to the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}
