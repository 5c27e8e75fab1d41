package defs

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a catalog file. YAML and JSON are both accepted.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	slog.Info("catalog loaded",
		"path", path,
		"abilities", len(cat.Abilities),
		"modifiers", len(cat.Modifiers),
		"equippables", len(cat.Equippables),
		"passives", len(cat.Passives.Nodes),
		"tiers", len(cat.Tiers),
		"stages", len(cat.Stages))
	return cat, nil
}

// ParseCatalog decodes catalog contents from YAML (or JSON) bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Contents
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return NewCatalog(c)
}
