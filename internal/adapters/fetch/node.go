package fetch

import (
	"context"

	"github.com/WebReflection/header-snippets/internal/adapters/logger"
	"github.com/WebReflection/header-snippets/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the shim loader Graft node.
const NodeID graft.ID = "adapter.shim_loader"

func init() {
	graft.Register(graft.Node[ports.Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Loader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
