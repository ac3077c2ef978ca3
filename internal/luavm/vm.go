// Package luavm implements the per-invocation Lua VM (C5): construction,
// the State global, require, output capture, and the Lua/Go/JSON value
// conversion the teacher's internal/lua/runtime.go performs for its own
// (unrelated) domain via GoToLua/LuaToGo.
package luavm

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/zot/rdflua/internal/ffi"
	"github.com/zot/rdflua/internal/resolver"
)

// VM wraps one gopher-lua state for the lifetime of exactly one
// invocation. Per spec.md §4.5, its require stack and invocation handle
// are attached as Go-side state private to this struct — never as Lua
// globals, tables, or metatables, so user code cannot read, forge, or
// mutate them.
type VM struct {
	L            *lua.LState
	registry     *ffi.Registry
	handle       ffi.Handle
	resolver     *resolver.Registry
	requireStack []string
	requireCache map[string]lua.LValue
	output       strings.Builder
}

// New constructs a fresh VM. handle identifies the active-store slot
// State.* calls will route through; it may be the zero Handle, in which
// case every State.* call fails with "RDFStore not initialized".
func New(registry *ffi.Registry, handle ffi.Handle, resolvers *resolver.Registry) *VM {
	L := lua.NewState()
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	vm := &VM{
		L:            L,
		registry:     registry,
		handle:       handle,
		resolver:     resolvers,
		requireCache: make(map[string]lua.LValue),
	}
	vm.installState()
	vm.installRequire()
	vm.installOutput()
	return vm
}

// Close releases the underlying Lua state. Safe to call once per VM.
func (vm *VM) Close() {
	vm.L.Close()
}

// CapturedOutput returns everything written by print/io.write so far, in
// call order.
func (vm *VM) CapturedOutput() string {
	return vm.output.String()
}

// Exec loads and runs source as a single chunk, converting its return
// value (if any) to a JSON-compatible Go value per §4.5.
func (vm *VM) Exec(source string) (any, error) {
	fn, err := vm.L.LoadString(source)
	if err != nil {
		return nil, err
	}
	vm.L.Push(fn)
	if err := vm.L.PCall(0, 1, nil); err != nil {
		return nil, err
	}
	ret := vm.L.Get(-1)
	vm.L.Pop(1)
	if ret == lua.LNil {
		return nil, nil
	}
	return LuaToGo(ret), nil
}
