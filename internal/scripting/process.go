package scripting

import (
	"fmt"
	"time"

	coresys "github.com/l1jgo/ecscore/internal/core/system"
	"github.com/l1jgo/ecscore/internal/data"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Process is a pipeline process implemented in Lua. It runs its update
// function once per tick and receives injected values through custom
// injection nodes, which hand it a Lua table per value via Handle.
type Process struct {
	name     string
	phase    coresys.Phase
	update   string
	handlers map[string]string
	engine   *Engine
	log      *zap.Logger
}

var _ coresys.System = (*Process)(nil)

// NewProcess builds a process from a binding. Every referenced Lua function
// must already be loaded in engine.
func NewProcess(engine *Engine, b data.ScriptBinding) (*Process, error) {
	phase, ok := coresys.ParsePhase(b.Phase)
	if !ok {
		return nil, fmt.Errorf("script %s: unknown phase %q", b.Name, b.Phase)
	}
	if b.Update != "" && !engine.HasFunc(b.Update) {
		return nil, fmt.Errorf("script %s: update function %s not found", b.Name, b.Update)
	}
	for kind, fn := range b.Handlers {
		if !engine.HasFunc(fn) {
			return nil, fmt.Errorf("script %s: handler %s for %s not found", b.Name, fn, kind)
		}
	}
	return &Process{
		name:     b.Name,
		phase:    phase,
		update:   b.Update,
		handlers: b.Handlers,
		engine:   engine,
		log:      engine.log.With(zap.String("script", b.Name)),
	}, nil
}

func (p *Process) Name() string         { return p.name }
func (p *Process) Phase() coresys.Phase { return p.phase }

// Handles reports whether the script binds a handler for kind.
func (p *Process) Handles(kind string) bool {
	_, ok := p.handlers[kind]
	return ok
}

func (p *Process) Update(dt time.Duration) {
	if p.update == "" {
		return
	}
	if err := p.engine.Call(p.update, lua.LNumber(dt.Seconds())); err != nil {
		p.log.Error("script update failed", zap.Error(err))
	}
}

// Handle calls the Lua handler bound to kind with value. Kinds the script
// does not handle are ignored.
func (p *Process) Handle(kind string, value lua.LValue) {
	fn, ok := p.handlers[kind]
	if !ok {
		return
	}
	if err := p.engine.Call(fn, value); err != nil {
		p.log.Error("script handler failed", zap.String("kind", kind), zap.Error(err))
	}
}

// Engine returns the VM the process runs on.
func (p *Process) Engine() *Engine { return p.engine }
