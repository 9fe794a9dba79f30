package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Config sizes a world and the pools it creates.
type Config struct {
	EntitiesCapacity       int
	PoolRecycledCapacity   int
	PoolComponentsCapacity int
	// Checked turns on the pool precondition guards. Keep it on in tests.
	Checked bool
}

// DefaultConfig returns the sizing used when a field is left at zero.
func DefaultConfig() Config {
	return Config{
		EntitiesCapacity:       512,
		PoolRecycledCapacity:   128,
		PoolComponentsCapacity: 128,
		Checked:                true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.EntitiesCapacity <= 0 {
		c.EntitiesCapacity = d.EntitiesCapacity
	}
	if c.PoolRecycledCapacity <= 0 {
		c.PoolRecycledCapacity = d.PoolRecycledCapacity
	}
	if c.PoolComponentsCapacity <= 0 {
		c.PoolComponentsCapacity = d.PoolComponentsCapacity
	}
	return c
}

// World is the top-level ECS container. It owns the entity pool, the pool
// registry, and a deferred destruction queue flushed by CleanupSystem each tick.
// A world is driven by a single goroutine.
type World struct {
	index        uint16
	cfg          Config
	capacity     int
	entities     *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	resizeHooks  []func(capacity int)
	log          *zap.Logger
}

// NewWorld creates world number index (0-based). index must stay below MaxWorlds.
func NewWorld(index uint16, cfg Config, log *zap.Logger) (*World, error) {
	if index >= MaxWorlds {
		return nil, fmt.Errorf("world index %d exceeds limit %d", index, MaxWorlds-1)
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	return &World{
		index:        index,
		cfg:          cfg,
		capacity:     cfg.EntitiesCapacity,
		entities:     NewEntityPool(index, cfg.EntitiesCapacity),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		log:          log.With(zap.Uint16("world", index)),
	}, nil
}

func (w *World) Index() uint16         { return w.index }
func (w *World) Config() Config        { return w.cfg }
func (w *World) Capacity() int         { return w.capacity }
func (w *World) Len() int              { return w.entities.Len() }
func (w *World) Registry() *Registry   { return w.registry }
func (w *World) Entities() *EntityPool { return w.entities }
func (w *World) Logger() *zap.Logger   { return w.log }

// NewEntity allocates an entity, doubling capacity and resizing every pool
// when the slot space is exhausted.
func (w *World) NewEntity() EntityID {
	if w.entities.FreeLen() == 0 && w.entities.Slots() == w.capacity {
		w.resize(w.capacity * 2)
	}
	return w.entities.Create()
}

func (w *World) resize(capacity int) {
	w.capacity = capacity
	w.registry.Resize(capacity)
	for _, fn := range w.resizeHooks {
		fn(capacity)
	}
	w.log.Debug("world capacity grown",
		zap.Int("capacity", capacity),
		zap.Int("pools", len(w.registry.Pools())),
	)
}

// OnResize registers fn to run after every capacity change, once all pools
// have been resized.
func (w *World) OnResize(fn func(capacity int)) {
	w.resizeHooks = append(w.resizeHooks, fn)
}

func (w *World) Alive(id EntityID) bool {
	return w.entities.Alive(id)
}

// EntityAt returns the live entity occupying slot.
func (w *World) EntityAt(slot uint32) (EntityID, bool) {
	return w.entities.At(slot)
}

// DelEntity removes every component of id and invalidates it. It reports
// false for stale, null or foreign ids.
func (w *World) DelEntity(id EntityID) bool {
	if !w.entities.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id.Slot())
	return w.entities.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and returns the ones that
// were actually alive. The returned slice aliases the queue and is only valid
// until the next MarkForDestruction.
// Called by CleanupSystem at the end of each tick.
func (w *World) FlushDestroyQueue() []EntityID {
	n := 0
	for _, id := range w.destroyQueue {
		if w.DelEntity(id) {
			w.destroyQueue[n] = id
			n++
		}
	}
	destroyed := w.destroyQueue[:n]
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}

// GetPool returns the pool for T, creating and registering it on first use.
// Systems should look pools up once at construction and keep the pointer.
func GetPool[T any](w *World) *Pool[T] {
	t := reflect.TypeFor[T]()
	if p, ok := w.registry.Lookup(t); ok {
		return p.(*Pool[T])
	}
	p := NewPool[T](w.index, w.capacity, PoolConfig{
		RecycledCapacity:   w.cfg.PoolRecycledCapacity,
		ComponentsCapacity: w.cfg.PoolComponentsCapacity,
		Checked:            w.cfg.Checked,
	}, w.log)
	w.registry.Register(t, p)
	w.log.Debug("pool created", zap.String("component", p.ComponentName()))
	return p
}
