package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults failed: %v", err)
	}

	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Error("defaults must set screen dimensions")
	}
	if cfg.Solver.JacobiIterations < 1 {
		t.Error("defaults must set a valid iteration count")
	}
	if cfg.Derived.GridW <= 0 || cfg.Derived.GridH <= 0 {
		t.Error("derived grid dimensions not computed")
	}
	if cfg.Derived.DT32 != float32(cfg.Solver.DT) {
		t.Error("derived DT32 does not match solver dt")
	}
}

func TestGridDefaultsToScreenSize(t *testing.T) {
	path := writeConfig(t, `
screen:
  width: 320
  height: 200
grid:
  width: 0
  height: 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Derived.GridW != 320 || cfg.Derived.GridH != 200 {
		t.Errorf("grid should default to screen size, got %dx%d",
			cfg.Derived.GridW, cfg.Derived.GridH)
	}
}

func TestUserConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
solver:
  jacobi_iterations: 48
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Solver.JacobiIterations != 48 {
		t.Errorf("override not applied, got %d", cfg.Solver.JacobiIterations)
	}
	// Untouched fields keep their defaults
	if cfg.Screen.Width <= 0 {
		t.Error("defaults lost when merging user config")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []string{
		"solver:\n  jacobi_iterations: 0\n",
		"display:\n  mode: plasma\n",
		"tracers:\n  count: -5\n",
	}
	for _, body := range cases {
		path := writeConfig(t, body)
		if _, err := Load(path); err == nil {
			t.Errorf("expected validation error for:\n%s", body)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Solver.Viscosity = 0.0042

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Solver.Viscosity != 0.0042 {
		t.Errorf("viscosity lost in round trip: %f", loaded.Solver.Viscosity)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
