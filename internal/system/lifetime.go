package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/core/ecs"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
)

// LifetimeSystem counts entity lifetimes down and queues expired entities for
// CleanupSystem.
// Phase 3 (PostUpdate).
type LifetimeSystem struct {
	world     *ecs.World
	lifetimes *ecs.Pool[Lifetime]
	expired   []uint32
}

func NewLifetimeSystem(w *ecs.World) *LifetimeSystem {
	return &LifetimeSystem{
		world:     w,
		lifetimes: ecs.GetPool[Lifetime](w),
	}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(_ time.Duration) {
	s.expired = s.expired[:0]
	s.lifetimes.Each(func(slot uint32, l *Lifetime) {
		l.Ticks--
		if l.Ticks <= 0 {
			s.expired = append(s.expired, slot)
		}
	})
	for _, slot := range s.expired {
		s.lifetimes.TryDel(slot)
		if id, ok := s.world.EntityAt(slot); ok {
			s.world.MarkForDestruction(id)
		}
	}
}
