package app

import (
	"github.com/nfrund/alphaprime/internal/catalog"
	"github.com/nfrund/alphaprime/internal/module"
	"github.com/nfrund/alphaprime/internal/modules/audit"
	"github.com/nfrund/alphaprime/internal/modules/content"
)

// Dependencies holds the core services that are required by the application's modules.
// The event bus is shared through the registry instead.
type Dependencies struct {
	Catalog    *catalog.Service
	ContentDir string
	WatchDir   bool
}

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		// Add new application modules here.
		content.New(content.Dependencies{
			Catalog: deps.Catalog,
			Dir:     deps.ContentDir,
			Watch:   deps.WatchDir,
		}),
		audit.New(),
	}
}
