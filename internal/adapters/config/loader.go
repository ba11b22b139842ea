// Package config provides the manifest loader for the gate engine.
package config

import (
	"os"
	"path/filepath"

	"github.com/WebReflection/header-snippets/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileManifestLoader implements ports.ManifestLoader using a YAML file.
type FileManifestLoader struct {
	Filename string
}

// NewLoader creates a FileManifestLoader with the default filename.
func NewLoader() *FileManifestLoader {
	return &FileManifestLoader{Filename: "gates.yaml"}
}

// Load reads the manifest from the given working directory.
func (l *FileManifestLoader) Load(cwd string) (*domain.Manifest, error) {
	path := filepath.Join(cwd, l.Filename)
	return Load(path)
}

// manifestDTO represents the structure of the gates.yaml manifest file.
type manifestDTO struct {
	Version  string         `yaml:"version"`
	Baseline string         `yaml:"baseline"`
	Host     map[string]any `yaml:"host"`
	Gates    []gateDTO      `yaml:"gates"`
}

// gateDTO represents a single gate definition in the manifest.
// Gates are a list, not a map: manifest order is evaluation order.
type gateDTO struct {
	Capability string   `yaml:"capability"`
	Probe      probeDTO `yaml:"probe"`
	Fallback   string   `yaml:"fallback"`
}

// probeDTO represents the probe declaration of a gate.
type probeDTO struct {
	Kind  string   `yaml:"kind"`
	Names []string `yaml:"names"`
	Ref   string   `yaml:"ref"`
}

// Load reads a manifest file from the given path and returns a validated
// domain.Manifest.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest file")
	}

	var dto manifestDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest file")
	}

	m := &domain.Manifest{
		Version:  dto.Version,
		Baseline: domain.NewInternedString(dto.Baseline),
		Host:     dto.Host,
		Gates:    make([]domain.Gate, 0, len(dto.Gates)),
	}

	for _, g := range dto.Gates {
		kind := domain.ProbeKind(g.Probe.Kind)
		if g.Probe.Kind == "" {
			// A gate that names only its capability defaults to the
			// property-existence check on that capability.
			kind = domain.KindProperty
		}
		names := g.Probe.Names
		if len(names) == 0 && (kind == domain.KindProperty || kind == domain.KindConstruct) {
			names = []string{g.Capability}
		}

		m.Gates = append(m.Gates, domain.Gate{
			Capability: domain.NewInternedString(g.Capability),
			Probe: domain.ProbeSpec{
				Kind:  kind,
				Names: domain.NewInternedStrings(names),
				Ref:   domain.NewInternedString(g.Probe.Ref),
			},
			Fallback: domain.NewInternedString(g.Fallback),
		})
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}
