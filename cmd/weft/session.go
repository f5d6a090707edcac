package main

import (
	"path/filepath"

	"weft/internal/metadata"
	"weft/internal/modfile"
	"weft/internal/project"
)

// session is a loaded transform-session manifest: the target module, the
// referenced source modules and the manifest options.
type session struct {
	manifest project.Manifest
	dest     *metadata.Module
	sources  []*metadata.Module
}

// loadSession reads a weft.toml manifest and loads the modules it names.
// Module paths are resolved relative to the manifest's directory.
func loadSession(manifestPath string) (*session, error) {
	m, err := project.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(manifestPath)
	dest, err := modfile.Load(sessionPath(dir, m.Target))
	if err != nil {
		return nil, err
	}
	s := &session{manifest: m, dest: dest}
	for _, ref := range m.Refs {
		src, err := modfile.Load(sessionPath(dir, ref))
		if err != nil {
			return nil, err
		}
		s.sources = append(s.sources, src)
	}
	return s, nil
}

func sessionPath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
