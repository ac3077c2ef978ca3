//go:build wasm

// This file implements the same Insert/Delete/Query/BatchInsert surface
// as bridge.go, but for the wasm build the module does not hold a
// triple store of its own — rdf_insert/rdf_delete/rdf_query/
// rdf_batch_insert/rdf_free are host-supplied imports (spec.md §4.4,
// §6), matching the guest/host split documented for host-supplied
// functions in the retrieval pack's guest ABI reference
// (other_examples/hieuntg81-alfred-ai__guest.go: "//go:wasmimport
// alfred_v1 log" for a host function vs. "//export malloc" for a
// guest-supplied one). reg and h are accepted only so this file's
// Insert/Delete/Query/BatchInsert match bridge.go's signature and
// internal/luavm/state.go compiles unchanged against either build;
// the actual gate is the package-level active slot, set by
// SetActiveSlot/ClearActiveSlot around each lua_run invocation.
package ffi

import (
	"sync"
	"unsafe"
)

// liveBuffers pins allocated buffers so the Go runtime's GC does not
// collect memory the host still holds a pointer into, keyed by the
// pointer handed across the FFI. Released by releaseBuf, which the
// bridge calls after each host call and the exported free (wasmFree)
// calls for host-reserved buffers.
var liveBuffers sync.Map

// activeSlot records whether the current invocation has a store bound
// on the host side. The wire ABI's rdf_* imports carry no handle
// argument (a wasm module instance is invoked by exactly one host for
// one store, spec.md §5), so unlike the native Registry this is a
// single flag rather than a map: it exists only so the bridge can
// return ERROR:RDFStore not initialized without making a host round
// trip when no store has been bound yet.
var (
	activeSlotMu sync.Mutex
	activeSlot   Handle
)

// SetActiveSlot and ClearActiveSlot are called by the orchestrator's
// wasm export around each lua_run invocation (spec.md §4.4: "The slot
// MUST be populated before the VM starts executing any Lua code and
// cleared on all exit paths").
func SetActiveSlot(h Handle) { activeSlotMu.Lock(); activeSlot = h; activeSlotMu.Unlock() }
func ClearActiveSlot()       { activeSlotMu.Lock(); activeSlot = ""; activeSlotMu.Unlock() }

func slotActive() bool {
	activeSlotMu.Lock()
	defer activeSlotMu.Unlock()
	return activeSlot != ""
}

func readCString(ptr uint32) string {
	if ptr == 0 {
		return ""
	}
	base := unsafe.Pointer(uintptr(ptr))
	n := 0
	for *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	buf := unsafe.Slice((*byte)(base), n)
	return string(buf)
}

func writeCString(s string) uint32 {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return bufPtr(buf)
}

// Host-supplied rdf_* functions (spec.md §4.4, §6). The module calls
// these; it never implements them.
//
//go:wasmimport rdflua_host rdf_insert
func hostRDFInsert(subPtr, predPtr, objPtr uint32) uint32

//go:wasmimport rdflua_host rdf_delete
func hostRDFDelete(subPtr, predPtr, objPtr uint32) uint32

//go:wasmimport rdflua_host rdf_query
func hostRDFQuery(patternPtr uint32) uint32

//go:wasmimport rdflua_host rdf_batch_insert
func hostRDFBatchInsert(triplesPtr uint32) uint32

//go:wasmimport rdflua_host rdf_free
func hostRDFFree(ptr uint32)

// Insert implements the rdf_insert import call site: marshal three
// UTF-8 strings into linear memory, call the host, and read back
// "OK" or "ERROR:<msg>".
func Insert(reg *Registry, h Handle, subject, predicate, objJSON string) string {
	if !slotActive() {
		return uninitializedError
	}
	subPtr, predPtr, objPtr := writeCString(subject), writeCString(predicate), writeCString(objJSON)
	defer releaseBuf(subPtr)
	defer releaseBuf(predPtr)
	defer releaseBuf(objPtr)
	replyPtr := hostRDFInsert(subPtr, predPtr, objPtr)
	defer hostRDFFree(replyPtr)
	return readCString(replyPtr)
}

// Delete calls out to the host's rdf_delete import.
func Delete(reg *Registry, h Handle, subject, predicate, objJSON string) string {
	if !slotActive() {
		return uninitializedError
	}
	subPtr, predPtr, objPtr := writeCString(subject), writeCString(predicate), writeCString(objJSON)
	defer releaseBuf(subPtr)
	defer releaseBuf(predPtr)
	defer releaseBuf(objPtr)
	replyPtr := hostRDFDelete(subPtr, predPtr, objPtr)
	defer hostRDFFree(replyPtr)
	return readCString(replyPtr)
}

// Query calls out to the host's rdf_query import.
func Query(reg *Registry, h Handle, patternJSON string) string {
	if !slotActive() {
		return uninitializedError
	}
	patternPtr := writeCString(patternJSON)
	defer releaseBuf(patternPtr)
	replyPtr := hostRDFQuery(patternPtr)
	defer hostRDFFree(replyPtr)
	return readCString(replyPtr)
}

// BatchInsert calls out to the host's rdf_batch_insert import. Unlike
// the native build there is no local store.BatchInserter capability
// check to make: the host's rdf_batch_insert implementation is
// responsible for its own fallback, if any.
func BatchInsert(reg *Registry, h Handle, triplesJSON string) string {
	if !slotActive() {
		return uninitializedError
	}
	triplesPtr := writeCString(triplesJSON)
	defer releaseBuf(triplesPtr)
	replyPtr := hostRDFBatchInsert(triplesPtr)
	defer hostRDFFree(replyPtr)
	return readCString(replyPtr)
}
