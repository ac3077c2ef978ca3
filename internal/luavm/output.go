package luavm

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// installOutput intercepts print and io.write so that their arguments
// are concatenated and appended to an invocation-local buffer instead of
// escaping to the host's standard streams — grounded on the teacher's
// RedirectOutput, which overrides the print global the same way.
func (vm *VM) installOutput() {
	vm.L.SetGlobal("print", vm.L.NewFunction(vm.luaPrint))

	ioTable := vm.L.NewTable()
	vm.L.SetField(ioTable, "write", vm.L.NewFunction(vm.luaWrite))
	vm.L.SetGlobal("io", ioTable)
}

func (vm *VM) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	vm.output.WriteString(strings.Join(parts, "\t"))
	vm.output.WriteString("\n")
	return 0
}

func (vm *VM) luaWrite(L *lua.LState) int {
	n := L.GetTop()
	for i := 1; i <= n; i++ {
		vm.output.WriteString(L.ToStringMeta(L.Get(i)).String())
	}
	return 0
}
