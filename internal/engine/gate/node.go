package gate

import (
	"context"

	"github.com/WebReflection/header-snippets/internal/adapters/fetch"     //nolint:depguard // Wired in engine wiring
	"github.com/WebReflection/header-snippets/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/WebReflection/header-snippets/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/WebReflection/header-snippets/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the gate runner Graft node.
const NodeID graft.ID = "engine.gate"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fetch.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			loader, err := graft.Dep[ports.Loader](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(loader, tel, log), nil
		},
	})
}
