package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: pull external input
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: simulation
	PhasePostUpdate              // 3: derived state
	PhaseOutput                  // 4: publish results
	PhaseCleanup                 // 5: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseOutput:
		return "output"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// ParsePhase maps a phase name as written by String back to a Phase.
func ParsePhase(name string) (Phase, bool) {
	for p := PhaseInput; p <= PhaseCleanup; p++ {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}

// System is the interface every pipeline process implements. Extra
// capabilities (receivers of injected values, script hooks) are discovered by
// type assertion through Processes.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
