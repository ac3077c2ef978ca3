//go:build wasm

package orchestrator

import (
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/zot/rdflua/internal/config"
	"github.com/zot/rdflua/internal/ffi"
	"github.com/zot/rdflua/internal/resolver"
)

// liveResultBuffers pins the JSON response buffers lua_run hands back to
// the host until a matching lua_free_result call, the same ownership
// discipline internal/ffi uses for the buffers it pins (rdf_* argument
// strings and malloc'd space).
var liveResultBuffers sync.Map

// wasmSlot is the sentinel handle set as the active slot for the
// duration of every lua_run call. The wire ABI carries no per-call
// handle (spec.md §5: a wasm module instance is invoked by exactly one
// host for one store), so a single constant is all §4.4's "active
// store slot" needs on this target — its only job is to distinguish
// "a store is bound" from "nothing is bound yet" for internal/ffi's
// uninitialized-store check.
const wasmSlot = ffi.Handle("wasm-instance")

// wasmOrchestrator is the single module-wide Orchestrator instance the
// exported lua_run/lua_free_result functions operate against.
var wasmOrchestrator = &Orchestrator{
	Registry: ffi.NewRegistry(),
	Resolvers: &resolver.Registry{
		File:      resolver.NewFileRegistry(),
		HTTP:      &resolver.HTTPResolver{Fetch: resolver.WasmHTTPFetch},
		MediaWiki: &resolver.MediaWikiResolver{Fetch: resolver.WasmMediaWikiFetch},
	},
	Logger: config.NewLogger(config.LevelWarn, "[rdflua]"),
}

//go:wasmexport lua_run
func luaRun(codePtr uint32) uint32 {
	source := readCStringWasm(codePtr)

	ffi.SetActiveSlot(wasmSlot)
	defer ffi.ClearActiveSlot()
	resp := (*responseForWasm)(wasmOrchestrator.run(source, wasmSlot))

	data, err := json.Marshal(resp)
	if err != nil {
		data = []byte(`{"output":"","result":null,"error":"internal: could not encode response"}`)
	}
	return writeCStringWasm(string(data))
}

//go:wasmexport lua_free_result
func luaFreeResult(ptr uint32) {
	if ptr == 0 {
		return
	}
	freeWasmBuf(ptr)
}

type responseForWasm = struct {
	Output string  `json:"output"`
	Result any     `json:"result"`
	Error  *string `json:"error"`
}

func readCStringWasm(ptr uint32) string {
	if ptr == 0 {
		return ""
	}
	base := unsafe.Pointer(uintptr(ptr))
	n := 0
	for *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}

func writeCStringWasm(s string) uint32 {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return pinWasmBuf(buf)
}

// pinWasmBuf keeps buf reachable and returns the linear-memory address the
// host reads lua_run's result from. The host must round-trip that address
// through lua_free_result exactly once to release it.
func pinWasmBuf(buf []byte) uint32 {
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	liveResultBuffers.Store(ptr, buf)
	return ptr
}

// freeWasmBuf drops the pin taken by pinWasmBuf, letting the buffer be
// collected. A ptr with no matching pin is ignored.
func freeWasmBuf(ptr uint32) {
	liveResultBuffers.Delete(ptr)
}
