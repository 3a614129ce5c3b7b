package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.N != DefaultN {
		t.Errorf("N = %d, want %d", cfg.N, DefaultN)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("Dt = %v, want %v", cfg.Dt, DefaultDt)
	}
	if cfg.Steps != 0 {
		t.Errorf("Steps = %d, want 0 (derived)", cfg.Steps)
	}
	if len(cfg.Schemes) != 3 {
		t.Errorf("expected 3 default schemes, got %v", cfg.Schemes)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := &Config{N: 64, Dt: 0.005, Steps: 500, Periods: 2, Seed: 99, Schemes: []string{"verlet"}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.02\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dt != 0.02 {
		t.Errorf("Dt = %v, want 0.02", cfg.Dt)
	}
	if cfg.N != DefaultN {
		t.Errorf("N = %d, want default %d", cfg.N, DefaultN)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if cfg.N <= 0 || cfg.Dt <= 0 {
			t.Errorf("preset %q has invalid parameters: %+v", name, cfg)
		}
		if len(cfg.Schemes) == 0 {
			t.Errorf("preset %q names no schemes", name)
		}
	}

	if GetPreset("does-not-exist") != nil {
		t.Error("expected nil for an unknown preset")
	}

	if GetPreset("coarse").Dt <= GetPreset("fine").Dt {
		t.Error("coarse preset should use a larger step than fine")
	}
}
