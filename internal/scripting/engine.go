package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for script processes.
// Single-goroutine access only (the pipeline's tick goroutine).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory, then from each of its subdirectories. A missing directory loads
// nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(scriptsDir); err != nil {
		e.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	entries, err := os.ReadDir(scriptsDir)
	if err != nil && !os.IsNotExist(err) {
		e.Close()
		return nil, fmt.Errorf("read scripts dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p := filepath.Join(scriptsDir, entry.Name())
		if err := e.loadDir(p); err != nil {
			e.Close()
			return nil, fmt.Errorf("load %s scripts: %w", entry.Name(), err)
		}
	}
	return e, nil
}

// NewEngineFromString creates an engine running a single chunk of Lua source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunc reports whether a global Lua function named name exists.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Call runs the global Lua function name with args in protected mode and
// discards its results.
func (e *Engine) Call(name string, args ...lua.LValue) error {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return fmt.Errorf("lua function %s not found", name)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		return fmt.Errorf("lua %s: %w", name, err)
	}
	return nil
}

// Global returns a Lua global, for inspecting script state.
func (e *Engine) Global(name string) lua.LValue {
	return e.vm.GetGlobal(name)
}

// NewTable allocates a table on the engine's VM.
func (e *Engine) NewTable() *lua.LTable {
	return e.vm.NewTable()
}

func (e *Engine) Close() {
	e.vm.Close()
}
