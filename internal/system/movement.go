package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/l1jgo/ecscore/internal/core/inject"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
)

// MovementSystem integrates velocity into position, scaled by the injected
// tick context and clamped to the injected bounds.
// Phase 2 (Update).
type MovementSystem struct {
	positions  *ecs.Pool[Position]
	velocities *ecs.Pool[Velocity]
	ctx        *TickContext
	bounds     *Bounds
}

var (
	_ inject.Receiver[*TickContext] = (*MovementSystem)(nil)
	_ BoundsReceiver                = (*MovementSystem)(nil)
)

func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		positions:  ecs.GetPool[Position](w),
		velocities: ecs.GetPool[Velocity](w),
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Receive(ctx *TickContext) { s.ctx = ctx }

func (s *MovementSystem) ReceiveBounds(b *Bounds) { s.bounds = b }

func (s *MovementSystem) Update(dt time.Duration) {
	scale := 1.0
	if s.ctx != nil && s.ctx.Scale > 0 {
		scale = s.ctx.Scale
	}
	step := dt.Seconds() * scale
	s.velocities.Each(func(slot uint32, v *Velocity) {
		if !s.positions.Has(slot) {
			return
		}
		p, _ := s.positions.Get(slot)
		p.X += v.X * step
		p.Y += v.Y * step
		if s.bounds != nil {
			s.bounds.Clamp(p)
		}
	})
}
