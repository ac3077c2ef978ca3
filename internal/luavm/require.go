package luavm

import (
	lua "github.com/yuin/gopher-lua"
)

// installRequire installs a custom require global built on a per-VM
// cache, in the shape of the teacher's registerRequire/
// DirectRequireLuaFile: mark the specifier as loading before executing
// its chunk (guarding against circular requires), execute via
// LoadString/PCall, unmark on failure, cache the result on success.
func (vm *VM) installRequire() {
	vm.L.SetGlobal("require", vm.L.NewFunction(vm.luaRequire))
}

func (vm *VM) luaRequire(L *lua.LState) int {
	spec := L.CheckString(1)

	if cached, ok := vm.requireCache[spec]; ok {
		L.Push(cached)
		return 1
	}

	var base string
	if len(vm.requireStack) > 0 {
		base = vm.requireStack[len(vm.requireStack)-1]
	}

	src, newBase, err := vm.resolver.Resolve(spec, base)
	if err != nil {
		L.RaiseError("module load error: %v", err)
	}

	// Mark before executing so a circular require observes the
	// placeholder instead of recursing forever.
	vm.requireCache[spec] = lua.LTrue
	vm.requireStack = append(vm.requireStack, newBase)

	fn, loadErr := L.LoadString(src)
	if loadErr != nil {
		vm.popRequire(spec)
		L.RaiseError("module load error: %s: %v", spec, loadErr)
	}
	L.Push(fn)
	if callErr := L.PCall(0, 1, nil); callErr != nil {
		vm.popRequire(spec)
		L.RaiseError("module load error: %s: %v", spec, callErr)
	}

	ret := L.Get(-1)
	L.Pop(1)
	if ret == lua.LNil {
		ret = lua.LTrue
	}
	vm.requireStack = vm.requireStack[:len(vm.requireStack)-1]
	vm.requireCache[spec] = ret

	L.Push(ret)
	return 1
}

func (vm *VM) popRequire(spec string) {
	vm.requireStack = vm.requireStack[:len(vm.requireStack)-1]
	delete(vm.requireCache, spec)
}
