package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/l1jgo/ecscore/internal/core/event"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end and
// announces every destroyed entity on the bus.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	bus   *event.Bus
	log   *zap.Logger
}

func NewCleanupSystem(world *ecs.World, bus *event.Bus, log *zap.Logger) *CleanupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanupSystem{world: world, bus: bus, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	destroyed := s.world.FlushDestroyQueue()
	if len(destroyed) == 0 {
		return
	}
	for _, id := range destroyed {
		event.Emit(s.bus, event.EntityDestroyed{ID: id})
	}
	s.log.Debug("entities destroyed", zap.Int("count", len(destroyed)))
}
