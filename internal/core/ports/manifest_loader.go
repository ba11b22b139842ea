package ports

import "github.com/WebReflection/header-snippets/internal/core/domain"

// ManifestLoader defines the interface for loading a gate manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest from the given working directory and returns
	// the validated gate list.
	Load(cwd string) (*domain.Manifest, error)
}
