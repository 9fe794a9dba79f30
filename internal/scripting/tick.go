package scripting

import (
	"github.com/l1jgo/ecscore/internal/data"
	"github.com/l1jgo/ecscore/internal/system"
	lua "github.com/yuin/gopher-lua"
)

// KindTick is the handler kind scripts bind to receive the tick context.
const KindTick = "tick"

// DeliverTick adapts a script process to a custom injection node for
// *system.TickContext. The context is copied into a fresh Lua table.
func DeliverTick(p *Process, ctx *system.TickContext) {
	if ctx == nil || !p.Handles(KindTick) {
		return
	}
	p.Handle(KindTick, TickTable(p.engine, ctx))
}

// TickTable converts a tick context into a Lua table with fields frame, dt
// (seconds) and scale, plus a bounds subtable when bounds are set.
func TickTable(e *Engine, ctx *system.TickContext) *lua.LTable {
	t := e.NewTable()
	t.RawSetString("frame", lua.LNumber(ctx.Frame))
	t.RawSetString("dt", lua.LNumber(ctx.Delta.Seconds()))
	t.RawSetString("scale", lua.LNumber(ctx.Scale))
	if b := ctx.Bounds; b != nil {
		bt := e.NewTable()
		bt.RawSetString("min_x", lua.LNumber(b.MinX))
		bt.RawSetString("min_y", lua.LNumber(b.MinY))
		bt.RawSetString("max_x", lua.LNumber(b.MaxX))
		bt.RawSetString("max_y", lua.LNumber(b.MaxY))
		t.RawSetString("bounds", bt)
	}
	return t
}

// NewProcesses builds one process per binding, in binding order.
func NewProcesses(e *Engine, bindings []data.ScriptBinding) ([]*Process, error) {
	procs := make([]*Process, 0, len(bindings))
	for _, b := range bindings {
		p, err := NewProcess(e, b)
		if err != nil {
			return nil, err
		}
		procs = append(procs, p)
	}
	return procs, nil
}
