package luavm

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// LuaToGo converts a Lua value to a JSON-compatible Go value per the
// return-value encoding rule in spec.md §4.5: nil -> nil, numbers ->
// float64, booleans -> bool, strings -> string, array-shaped tables and
// empty tables -> []any, other tables -> map[string]any,
// functions/userdata/threads ->
// a string placeholder. Grounded on the teacher's
// internal/lua/runtime.go LuaToGo/isArray, generalised from its
// private-field-skipping UI convention to the plain array/object rule
// this domain specifies.
func LuaToGo(v lua.LValue) any {
	switch val := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		return float64(val)
	case lua.LString:
		return string(val)
	case *lua.LTable:
		return luaTableToGo(val)
	default:
		return fmt.Sprintf("%s: %s", typeName(v), v.String())
	}
}

func typeName(v lua.LValue) string {
	switch v.(type) {
	case *lua.LFunction:
		return "function"
	case *lua.LUserData:
		return "userdata"
	case *lua.LState:
		return "thread"
	default:
		return v.Type().String()
	}
}

func isArray(t *lua.LTable) (bool, int) {
	n := t.Len()
	if n == 0 {
		return false, 0
	}
	count := 0
	ok := true
	t.ForEach(func(k, v lua.LValue) {
		count++
		num, isNum := k.(lua.LNumber)
		if !isNum || float64(num) != math.Trunc(float64(num)) || int(num) < 1 || int(num) > n {
			ok = false
		}
	})
	return ok && count == n, n
}

func luaTableToGo(t *lua.LTable) any {
	if arr, n := isArray(t); arr {
		out := make([]any, n)
		for i := 1; i <= n; i++ {
			out[i-1] = LuaToGo(t.RawGetInt(i))
		}
		return out
	}
	empty := true
	t.ForEach(func(k, v lua.LValue) { empty = false })
	if empty {
		return []any{}
	}
	obj := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		obj[fmt.Sprint(LuaToGo(k))] = LuaToGo(v)
	})
	return obj
}

// GoToLua is the inverse conversion, used to hand JSON-decoded query
// results (and pattern construction) back into Lua as tables.
func GoToLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		tbl := L.NewTable()
		for i, item := range val {
			tbl.RawSetInt(i+1, GoToLua(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		for k, item := range val {
			tbl.RawSet(lua.LString(k), GoToLua(L, item))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}

// jsonEncodable reports whether v is built only from the shapes §4.5
// allows for State.insert/State.delete's object argument: nil, bool,
// number, string, or a table built recursively from those. Functions,
// userdata, and threads are rejected here with BadArgument, unlike the
// more permissive placeholder behavior LuaToGo uses for the final
// return value.
func jsonEncodable(v lua.LValue) bool {
	switch val := v.(type) {
	case *lua.LNilType, lua.LBool, lua.LNumber, lua.LString:
		return true
	case *lua.LTable:
		ok := true
		val.ForEach(func(k, v lua.LValue) {
			if !jsonEncodable(v) {
				ok = false
			}
		})
		return ok
	default:
		return false
	}
}
