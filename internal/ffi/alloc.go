//go:build wasm

package ffi

import "unsafe"

// Allocation for buffers the module hands across the FFI boundary
// (strings passed to the rdf_* imports, and space the host reserves
// through the exported malloc). Grounded on the malloc/free export pair
// documented in the retrieval pack's guest ABI reference
// (other_examples/hieuntg81-alfred-ai__guest.go): the host calls malloc
// to reserve space in linear memory, writes or reads through the
// returned pointer, and calls the exported free when done. There is no
// allocator-replacement dependency anywhere in the retrieval pack; each
// buffer is an ordinary Go byte slice kept reachable in liveBuffers
// until it is released (no arena, no bump pointer).

//go:wasmexport malloc
func wasmMalloc(size uint32) uint32 {
	buf := make([]byte, size)
	return bufPtr(buf)
}

//go:wasmexport free
func wasmFree(ptr uint32) {
	releaseBuf(ptr)
}

func bufPtr(buf []byte) uint32 {
	if len(buf) == 0 {
		return 0
	}
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	liveBuffers.Store(ptr, buf)
	return ptr
}

func releaseBuf(ptr uint32) {
	liveBuffers.Delete(ptr)
}
