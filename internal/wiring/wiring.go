// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/WebReflection/header-snippets/internal/adapters/config"
	_ "github.com/WebReflection/header-snippets/internal/adapters/fetch"
	_ "github.com/WebReflection/header-snippets/internal/adapters/logger"
	_ "github.com/WebReflection/header-snippets/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/WebReflection/header-snippets/internal/app"
	_ "github.com/WebReflection/header-snippets/internal/engine/gate"
)
