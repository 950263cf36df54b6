package macro

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Hooks is the set of read-only callbacks a Runtime exposes to Lua scripts
// as the "treenote" global table. The facade supplies these; macro itself
// never touches the document directly.
type Hooks struct {
	NodeCount       func() int
	EntryLineLength func(row int) int
	EntryContent    func(row, begin, length int) string
	EntryPrefix     func(row int) string
}

// Runtime is a sandboxed Lua state with the treenote API registered.
type Runtime struct {
	L     *lua.LState
	hooks Hooks
}

// New creates a Runtime backed by hooks. The Lua state is opened with only
// the base, string and table libraries, mirroring the teacher's selective-open
// sandboxing rather than the default full standard library.
func New(hooks Hooks) *Runtime {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenString(L)
	lua.OpenTable(L)

	r := &Runtime{L: L, hooks: hooks}
	r.registerAPI()
	return r
}

func (r *Runtime) registerAPI() {
	mod := r.L.NewTable()
	r.L.SetGlobal("treenote", mod)

	r.L.SetField(mod, "node_count", r.L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(r.hooks.NodeCount()))
		return 1
	}))
	r.L.SetField(mod, "entry_line_length", r.L.NewFunction(func(L *lua.LState) int {
		row := L.CheckInt(1)
		L.Push(lua.LNumber(r.hooks.EntryLineLength(row)))
		return 1
	}))
	r.L.SetField(mod, "entry_content", r.L.NewFunction(func(L *lua.LState) int {
		row, begin, length := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
		L.Push(lua.LString(r.hooks.EntryContent(row, begin, length)))
		return 1
	}))
	r.L.SetField(mod, "entry_prefix", r.L.NewFunction(func(L *lua.LState) int {
		row := L.CheckInt(1)
		L.Push(lua.LString(r.hooks.EntryPrefix(row)))
		return 1
	}))
}

// RunString executes script in this Runtime's Lua state.
func (r *Runtime) RunString(script string) error {
	if err := r.L.DoString(script); err != nil {
		return fmt.Errorf("macro: %w", err)
	}
	return nil
}

// Close releases the underlying Lua state.
func (r *Runtime) Close() {
	r.L.Close()
}
