package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"weft/internal/project"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weft.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
[module]
target = "app.weft"
refs = ["corelib.weft", "extras.weft"]

[debug]
locations = false
`)
	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Target != "app.weft" {
		t.Errorf("target = %q", m.Target)
	}
	if len(m.Refs) != 2 || m.Refs[0] != "corelib.weft" {
		t.Errorf("refs = %v", m.Refs)
	}
	if m.DebugLocations {
		t.Error("debug locations should be disabled by the manifest")
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	path := writeManifest(t, `
[module]
target = "app.weft"
`)
	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !m.DebugLocations {
		t.Error("debug locations should default to on")
	}
	if m.Refs != nil {
		t.Errorf("refs = %v, want none", m.Refs)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	t.Run("missing_module_section", func(t *testing.T) {
		path := writeManifest(t, `[debug]
locations = true
`)
		_, err := project.Load(path)
		if !errors.Is(err, project.ErrModuleSectionMissing) {
			t.Errorf("expected ErrModuleSectionMissing, got %v", err)
		}
	})

	t.Run("missing_target", func(t *testing.T) {
		path := writeManifest(t, `[module]
refs = ["a.weft"]
`)
		_, err := project.Load(path)
		if !errors.Is(err, project.ErrTargetMissing) {
			t.Errorf("expected ErrTargetMissing, got %v", err)
		}
	})

	t.Run("bad_toml", func(t *testing.T) {
		path := writeManifest(t, `[module`)
		if _, err := project.Load(path); err == nil {
			t.Error("malformed TOML should fail")
		}
	})
}
