// Package project loads the weft.toml manifest describing one transform
// session: the target module, the referenced source modules and the
// debug-location emission switch.
package project

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var (
	// ErrModuleSectionMissing indicates that [module] is missing in a manifest.
	ErrModuleSectionMissing = errors.New("missing [module]")
	// ErrTargetMissing indicates that [module].target is missing in a manifest.
	ErrTargetMissing = errors.New("missing [module].target")
)

// Manifest is a parsed weft.toml.
type Manifest struct {
	// Target is the module being transformed.
	Target string
	// Refs are the source modules whose members may be referenced.
	Refs []string
	// DebugLocations controls debug-location generation; on by default.
	DebugLocations bool
}

type manifestFile struct {
	Module struct {
		Target string   `toml:"target"`
		Refs   []string `toml:"refs"`
	} `toml:"module"`
	Debug struct {
		Locations bool `toml:"locations"`
	} `toml:"debug"`
}

// Load parses a weft.toml manifest.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("module") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrModuleSectionMissing)
	}
	if cfg.Module.Target == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrTargetMissing)
	}
	m := Manifest{
		Target:         cfg.Module.Target,
		Refs:           cfg.Module.Refs,
		DebugLocations: true,
	}
	if meta.IsDefined("debug", "locations") {
		m.DebugLocations = cfg.Debug.Locations
	}
	return m, nil
}
