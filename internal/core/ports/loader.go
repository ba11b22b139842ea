// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/WebReflection/header-snippets/internal/core/domain"
)

// Loader resolves a fallback resource reference into a shim.
//
// The resource is an opaque URL; how it is fetched, decoded or cached is the
// loader's responsibility. A load cannot be aborted once started: the ctx is
// consulted when the load begins, not during it.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type Loader interface {
	// Load fetches and decodes the fallback implementation at resource.
	Load(ctx context.Context, resource domain.InternedString) (domain.Shim, error)
}
