package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecscore.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[world]
index = 3
capacity = 64

[debug]
checked = false

[pipeline]
tick_rate = "20ms"
entities = 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Index != 3 || cfg.World.Capacity != 64 {
		t.Fatalf("world = %+v", cfg.World)
	}
	if cfg.Pipeline.TickRate != 20*time.Millisecond || cfg.Pipeline.Entities != 10 {
		t.Fatalf("pipeline = %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.TimeScale != 1.0 || cfg.Logging.Level != "info" {
		t.Fatal("unset keys lost their defaults")
	}

	ecsCfg := cfg.ECS()
	if ecsCfg.Checked || ecsCfg.EntitiesCapacity != 64 || ecsCfg.PoolComponentsCapacity != 128 {
		t.Fatalf("ECS() = %+v", ecsCfg)
	}
}

func TestLoadRejectsWorldIndex(t *testing.T) {
	path := writeConfig(t, "[world]\nindex = 65535\n")
	if _, err := Load(path); err == nil {
		t.Fatal("world index 65535 accepted")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}
	if _, err := Load(writeConfig(t, "[world\n")); err == nil {
		t.Fatal("malformed toml accepted")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Debug.Checked {
		t.Error("checked mode off by default")
	}
	if cfg.Pipeline.TickRate <= 0 {
		t.Error("no default tick rate")
	}
}
