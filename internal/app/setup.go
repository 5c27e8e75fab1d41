package app

import (
	"fmt"

	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/targeting"
)

// LoadData resolves the catalog and targeting program named by cfg. Empty
// paths select the built-in catalog and the nearest-enemy program.
func LoadData(cfg config.Game) (*defs.Catalog, *targeting.Program, error) {
	cat := defs.Default()
	if cfg.CatalogPath != "" {
		var err error
		if cat, err = defs.LoadCatalog(cfg.CatalogPath); err != nil {
			return nil, nil, fmt.Errorf("loading catalog: %w", err)
		}
	}
	var program *targeting.Program
	if cfg.TargetingPath != "" {
		var err error
		if program, err = targeting.LoadProgram(cfg.TargetingPath); err != nil {
			return nil, nil, fmt.Errorf("loading targeting program: %w", err)
		}
	}
	return cat, program, nil
}
