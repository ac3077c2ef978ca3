package luavm

import (
	"encoding/json"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/zot/rdflua/internal/ffi"
)

// installState installs the read-only State global with its four
// methods, before user code runs (spec.md §4.5).
func (vm *VM) installState() {
	methods := vm.L.NewTable()
	vm.L.SetField(methods, "insert", vm.L.NewFunction(vm.stateInsert))
	vm.L.SetField(methods, "delete", vm.L.NewFunction(vm.stateDelete))
	vm.L.SetField(methods, "query", vm.L.NewFunction(vm.stateQuery))
	vm.L.SetField(methods, "batchInsert", vm.L.NewFunction(vm.stateBatchInsert))

	// State itself stays empty and reads through __index, so every
	// assignment (including to an existing method name) hits __newindex.
	state := vm.L.NewTable()
	mt := vm.L.NewTable()
	vm.L.SetField(mt, "__index", methods)
	vm.L.SetField(mt, "__newindex", vm.L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("State is read-only")
		return 0
	}))
	vm.L.SetMetatable(state, mt)
	vm.L.SetGlobal("State", state)
}

func (vm *VM) raiseOnWireError(L *lua.LState, reply string) {
	if strings.HasPrefix(reply, "ERROR:") {
		L.RaiseError("%s", strings.TrimPrefix(reply, "ERROR:"))
	}
}

func objectToJSON(L *lua.LState, v lua.LValue) string {
	if v == lua.LNil || v == nil {
		return ""
	}
	if !jsonEncodable(v) {
		L.RaiseError("bad argument: object is not JSON-encodable")
	}
	data, err := json.Marshal(LuaToGo(v))
	if err != nil {
		L.RaiseError("bad argument: object is not JSON-encodable: %v", err)
	}
	return string(data)
}

func (vm *VM) stateInsert(L *lua.LState) int {
	subject := L.CheckString(1)
	predicate := L.CheckString(2)
	objJSON := objectToJSON(L, L.Get(3))
	reply := ffi.Insert(vm.registry, vm.handle, subject, predicate, objJSON)
	vm.raiseOnWireError(L, reply)
	return 0
}

func (vm *VM) stateDelete(L *lua.LState) int {
	subject := L.CheckString(1)
	predicate := L.CheckString(2)
	var objJSON string
	if L.GetTop() >= 3 && L.Get(3) != lua.LNil {
		objJSON = objectToJSON(L, L.Get(3))
	}
	reply := ffi.Delete(vm.registry, vm.handle, subject, predicate, objJSON)
	vm.raiseOnWireError(L, reply)
	return 0
}

func (vm *VM) stateQuery(L *lua.LState) int {
	patternJSON := "{}"
	if L.GetTop() >= 1 {
		if tbl, ok := L.Get(1).(*lua.LTable); ok {
			patternJSON = patternTableToJSON(L, tbl)
		}
	}
	reply := ffi.Query(vm.registry, vm.handle, patternJSON)
	vm.raiseOnWireError(L, reply)

	var triples []struct {
		Subject   string `json:"subject"`
		Predicate string `json:"predicate"`
		Object    any    `json:"object"`
	}
	if err := json.Unmarshal([]byte(reply), &triples); err != nil {
		L.RaiseError("malformed query response: %v", err)
	}
	result := L.NewTable()
	for i, t := range triples {
		row := L.NewTable()
		L.SetField(row, "subject", lua.LString(t.Subject))
		L.SetField(row, "predicate", lua.LString(t.Predicate))
		L.SetField(row, "object", GoToLua(L, t.Object))
		result.RawSetInt(i+1, row)
	}
	L.Push(result)
	return 1
}

func (vm *VM) stateBatchInsert(L *lua.LState) int {
	tbl := L.CheckTable(1)
	var triples []map[string]any
	n := tbl.Len()
	for i := 1; i <= n; i++ {
		row, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.RaiseError("bad argument: batchInsert expects a sequence of tables")
		}
		subject, ok1 := L.GetField(row, "subject").(lua.LString)
		predicate, ok2 := L.GetField(row, "predicate").(lua.LString)
		if !ok1 || !ok2 {
			L.RaiseError("bad argument: each triple needs string subject and predicate")
		}
		objVal := L.GetField(row, "object")
		if !jsonEncodable(objVal) {
			L.RaiseError("bad argument: object is not JSON-encodable")
		}
		triples = append(triples, map[string]any{
			"subject":   string(subject),
			"predicate": string(predicate),
			"object":    LuaToGo(objVal),
		})
	}
	data, err := json.Marshal(triples)
	if err != nil {
		L.RaiseError("bad argument: %v", err)
	}
	reply := ffi.BatchInsert(vm.registry, vm.handle, string(data))
	vm.raiseOnWireError(L, reply)
	return 0
}

// patternTableToJSON encodes a Lua pattern table's present fields only,
// so that missing keys become bridge-side wildcards rather than
// explicit nulls (spec.md §4.5: "Encode missing keys as unset (not
// null)").
func patternTableToJSON(L *lua.LState, tbl *lua.LTable) string {
	out := make(map[string]any)
	for _, field := range []string{"subject", "predicate"} {
		if v := L.GetField(tbl, field); v != lua.LNil {
			if s, ok := v.(lua.LString); ok {
				out[field] = string(s)
			}
		}
	}
	if v := L.GetField(tbl, "object"); v != lua.LNil {
		out["object"] = LuaToGo(v)
	}
	data, err := json.Marshal(out)
	if err != nil {
		L.RaiseError("bad argument: %v", err)
	}
	return string(data)
}
