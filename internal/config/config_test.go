package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt != DefaultDt {
		t.Errorf("Dt = %v, want %v", cfg.Dt, DefaultDt)
	}
	if cfg.Res != DefaultRes {
		t.Errorf("Res = %v, want %v", cfg.Res, DefaultRes)
	}
	if cfg.MaxIte != DefaultMaxIte {
		t.Errorf("MaxIte = %v, want %v", cfg.MaxIte, DefaultMaxIte)
	}
	if cfg.Scenario == "" {
		t.Error("Scenario should default to a non-empty fixture name")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.02
	cfg.LinkKappa = 250
	cfg.Scenario = "mixed"

	path := filepath.Join(t.TempDir(), "rodsim.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Dt != cfg.Dt {
		t.Errorf("Dt = %v, want %v", loaded.Dt, cfg.Dt)
	}
	if loaded.LinkKappa != cfg.LinkKappa {
		t.Errorf("LinkKappa = %v, want %v", loaded.LinkKappa, cfg.LinkKappa)
	}
	if loaded.Scenario != cfg.Scenario {
		t.Errorf("Scenario = %q, want %q", loaded.Scenario, cfg.Scenario)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
	if err == nil {
		t.Error("expected error loading a missing file")
	}
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.05\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dt != 0.05 {
		t.Errorf("Dt = %v, want 0.05", cfg.Dt)
	}
	if cfg.MaxIte != DefaultMaxIte {
		t.Errorf("MaxIte = %v, want default %v to survive a partial file", cfg.MaxIte, DefaultMaxIte)
	}
}
