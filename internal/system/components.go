package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/core/inject"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

// Lifetime counts down ticks until the entity is queued for destruction.
type Lifetime struct {
	Ticks int
}

// Bounds is the playfield rectangle positions are clamped to.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsReceiver is served by a custom injection node, letting a process take
// bounds next to its Receive(*TickContext).
type BoundsReceiver interface {
	ReceiveBounds(b *Bounds)
}

// DeliverBounds adapts BoundsReceiver to inject.RegisterCustom.
func DeliverBounds(p BoundsReceiver, b *Bounds) { p.ReceiveBounds(b) }

func (b *Bounds) Clamp(p *Position) {
	p.X = min(max(p.X, b.MinX), b.MaxX)
	p.Y = min(max(p.Y, b.MinY), b.MaxY)
}

// TickContext is the shared per-tick context pushed through the injection
// graph before each tick. It carries its bounds as a nested dependency.
type TickContext struct {
	Frame  uint64
	Delta  time.Duration
	Scale  float64
	Bounds *Bounds
}

var _ inject.SelfInjectable = (*TickContext)(nil)

func (c *TickContext) InjectSelf(inj inject.Injector) {
	if c.Bounds != nil {
		inj.Inject(c.Bounds)
	}
}
