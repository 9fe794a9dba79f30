package system

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry is the process lookup the injection graph resolves subscribers from.
type Registry interface {
	Processes() []System
}

// Runner executes systems in phase order each tick and serves as the process
// registry of its pipeline.
type Runner struct {
	id       uuid.UUID
	declared []System
	systems  []System
	sorted   bool
	frame    uint64
	log      *zap.Logger
}

var _ Registry = (*Runner)(nil)

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Runner{
		id:       id,
		declared: make([]System, 0, 16),
		systems:  make([]System, 0, 16),
		log:      log.With(zap.String("pipeline", id.String())),
	}
}

func (r *Runner) ID() uuid.UUID      { return r.id }
func (r *Runner) Frame() uint64      { return r.frame }
func (r *Runner) Logger() *zap.Logger { return r.log }

func (r *Runner) Register(s System) {
	r.declared = append(r.declared, s)
	r.systems = append(r.systems, s)
	r.sorted = false
	r.log.Debug("system registered",
		zap.String("system", fmt.Sprintf("%T", s)),
		zap.Stringer("phase", s.Phase()),
	)
}

// Processes returns every registered system in declaration order.
func (r *Runner) Processes() []System {
	return r.declared
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.frame++
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// ensureSorted keeps declaration order within a phase.
func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}

// Processes returns the processes of reg implementing I, in declaration
// order. A capability nobody implements yields an empty slice.
func Processes[I any](reg Registry) []I {
	var out []I
	for _, s := range reg.Processes() {
		if p, ok := s.(I); ok {
			out = append(out, p)
		}
	}
	return out
}
