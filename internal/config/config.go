package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/l1jgo/ecscore/internal/core/ecs"
)

type Config struct {
	World    WorldConfig    `toml:"world"`
	Pool     PoolConfig     `toml:"pool"`
	Debug    DebugConfig    `toml:"debug"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Logging  LoggingConfig  `toml:"logging"`
}

type WorldConfig struct {
	Index    uint16 `toml:"index"`    // 0-based, below ecs.MaxWorlds
	Capacity int    `toml:"capacity"` // initial entity slot capacity
}

type PoolConfig struct {
	RecycledCapacity   int `toml:"recycled_capacity"`   // initial recycled-index stack size
	ComponentsCapacity int `toml:"components_capacity"` // initial dense table size
}

type DebugConfig struct {
	Checked bool `toml:"checked"` // pool precondition guards
}

type PipelineConfig struct {
	TickRate     time.Duration `toml:"tick_rate"`
	TimeScale    float64       `toml:"time_scale"`
	ScriptsDir   string        `toml:"scripts_dir"`
	BindingsPath string        `toml:"bindings_path"`
	Entities     int           `toml:"entities"` // demo entities spawned at boot
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.World.Index >= ecs.MaxWorlds {
		return nil, fmt.Errorf("config %s: world index %d out of range", path, cfg.World.Index)
	}
	return cfg, nil
}

// ECS converts the world, pool and debug sections into a world config.
func (c *Config) ECS() ecs.Config {
	return ecs.Config{
		EntitiesCapacity:       c.World.Capacity,
		PoolRecycledCapacity:   c.Pool.RecycledCapacity,
		PoolComponentsCapacity: c.Pool.ComponentsCapacity,
		Checked:                c.Debug.Checked,
	}
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	d := ecs.DefaultConfig()
	return &Config{
		World: WorldConfig{
			Index:    0,
			Capacity: d.EntitiesCapacity,
		},
		Pool: PoolConfig{
			RecycledCapacity:   d.PoolRecycledCapacity,
			ComponentsCapacity: d.PoolComponentsCapacity,
		},
		Debug: DebugConfig{
			Checked: true,
		},
		Pipeline: PipelineConfig{
			TickRate:     50 * time.Millisecond,
			TimeScale:    1.0,
			ScriptsDir:   "scripts",
			BindingsPath: "data/yaml/script_bindings.yaml",
			Entities:     256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
