package telemetry

import (
	"context"

	"github.com/WebReflection/header-snippets/internal/adapters/telemetry/progrock"
	"github.com/WebReflection/header-snippets/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return progrock.New(), nil
		},
	})
}
