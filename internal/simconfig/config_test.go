package simconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	body := "tick_seconds: 0.05\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickSeconds != 0.05 || cfg.LogLevel != "debug" {
		t.Errorf("file values must win: %+v", cfg)
	}
	if cfg.ContentDir != "content" || cfg.MaxBattleSeconds != 60.0 {
		t.Errorf("unset keys must keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	for name, body := range map[string]string{
		"tick":     "tick_seconds: 0\n",
		"duration": "max_battle_seconds: -1\n",
	} {
		path := filepath.Join(t.TempDir(), name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: non-positive value must be rejected", name)
		}
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing config file must error")
	}
}
