package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/core/event"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
)

// EventDispatchSystem makes last tick's events visible and delivers them.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus       *event.Bus
	delivered int
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.delivered += s.bus.DispatchAll()
}

// Delivered is the total number of events delivered so far.
func (s *EventDispatchSystem) Delivered() int { return s.delivered }
