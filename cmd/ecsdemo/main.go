package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/l1jgo/ecscore/internal/config"
	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/l1jgo/ecscore/internal/core/event"
	"github.com/l1jgo/ecscore/internal/core/inject"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
	"github.com/l1jgo/ecscore/internal/data"
	"github.com/l1jgo/ecscore/internal/scripting"
	"github.com/l1jgo/ecscore/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/ecscore.toml"
	if p := os.Getenv("ECSCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. World and event bus
	world, err := ecs.NewWorld(cfg.World.Index, cfg.ECS(), log)
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}
	bus := event.NewBus()
	world.OnResize(func(capacity int) {
		event.Emit(bus, event.WorldResized{World: world.Index(), Capacity: capacity})
	})
	event.Subscribe(bus, func(e event.WorldResized) {
		log.Info("world resized", zap.Uint16("world", e.World), zap.Int("capacity", e.Capacity))
	})

	// 4. Scripts
	bindings, err := loadBindings(cfg.Pipeline.BindingsPath)
	if err != nil {
		return err
	}
	engine, err := scripting.NewEngine(cfg.Pipeline.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("init scripting: %w", err)
	}
	defer engine.Close()
	procs, err := scripting.NewProcesses(engine, bindings)
	if err != nil {
		return fmt.Errorf("build script processes: %w", err)
	}

	// 5. Create systems and register with runner
	runner := coresys.NewRunner(log)
	dispatch := system.NewEventDispatchSystem(bus)
	runner.Register(dispatch)
	runner.Register(system.NewMovementSystem(world))
	runner.Register(system.NewLifetimeSystem(world))
	runner.Register(system.NewCleanupSystem(world, bus, log))
	for _, p := range procs {
		runner.Register(p)
	}

	// 6. Injection graph
	graph := inject.NewGraph(log)
	if _, err := inject.Register[*system.TickContext](graph); err != nil {
		return err
	}
	if _, err := inject.RegisterCustom[*scripting.Process, *system.TickContext](graph, scripting.DeliverTick); err != nil {
		return err
	}
	if _, err := inject.RegisterCustom[system.BoundsReceiver, *system.Bounds](graph, system.DeliverBounds); err != nil {
		return err
	}
	if err := graph.Init(runner); err != nil {
		return fmt.Errorf("init injection graph: %w", err)
	}

	// 7. Population
	bounds := &system.Bounds{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}
	sp := newSpawner(world, bounds)
	for i := 0; i < cfg.Pipeline.Entities; i++ {
		if err := sp.spawn(); err != nil {
			return fmt.Errorf("spawn entity: %w", err)
		}
	}
	event.Subscribe(bus, func(e event.EntityDestroyed) {
		if err := sp.spawn(); err != nil {
			log.Error("respawn failed", zap.Stringer("replaces", e.ID), zap.Error(err))
		}
	})
	log.Info("pipeline ready",
		zap.Stringer("pipeline", runner.ID()),
		zap.Int("systems", len(runner.Processes())),
		zap.Int("scripts", len(procs)),
		zap.Int("entities", world.Len()),
		zap.Duration("tick", cfg.Pipeline.TickRate),
	)

	// 8. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Pipeline.TickRate)
	defer ticker.Stop()

	const statsInterval = 100
	tc := &system.TickContext{Delta: cfg.Pipeline.TickRate, Scale: cfg.Pipeline.TimeScale, Bounds: bounds}
	for {
		select {
		case <-ticker.C:
			tc.Frame = runner.Frame() + 1
			graph.Inject(tc)
			runner.Tick(cfg.Pipeline.TickRate)
			if tc.Frame%statsInterval == 0 {
				log.Info("pipeline stats",
					zap.Uint64("frame", tc.Frame),
					zap.Int("entities", world.Len()),
					zap.Int("capacity", world.Capacity()),
					zap.Int("events", dispatch.Delivered()),
				)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			log.Info("pipeline stopped", zap.Uint64("frames", runner.Frame()))
			return nil
		}
	}
}

func loadBindings(path string) ([]data.ScriptBinding, error) {
	table, err := data.LoadBindingTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load script bindings: %w", err)
	}
	return table.All(), nil
}

// spawner creates moving entities with a random lifetime.
type spawner struct {
	world     *ecs.World
	bounds    *system.Bounds
	positions ecs.Field[system.Position]
	velocity  ecs.Field[system.Velocity]
	lifetimes ecs.Field[system.Lifetime]
}

func newSpawner(w *ecs.World, b *system.Bounds) *spawner {
	return &spawner{
		world:     w,
		bounds:    b,
		positions: ecs.NewField[system.Position](w, "position"),
		velocity:  ecs.NewField[system.Velocity](w, "velocity"),
		lifetimes: ecs.NewField[system.Lifetime](w, "lifetime"),
	}
}

func (s *spawner) spawn() error {
	id := s.world.NewEntity()
	pos := system.Position{
		X: s.bounds.MinX + rand.Float64()*(s.bounds.MaxX-s.bounds.MinX),
		Y: s.bounds.MinY + rand.Float64()*(s.bounds.MaxY-s.bounds.MinY),
	}
	if err := s.positions.Add(id, pos); err != nil {
		return err
	}
	vel := system.Velocity{X: rand.Float64()*20 - 10, Y: rand.Float64()*20 - 10}
	if err := s.velocity.Add(id, vel); err != nil {
		return err
	}
	return s.lifetimes.Add(id, system.Lifetime{Ticks: 20 + rand.Intn(200)})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
