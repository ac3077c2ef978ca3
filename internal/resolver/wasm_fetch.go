//go:build wasm

// The core does not implement http(s):// or mediawiki:// fetching
// itself (spec.md §1 Non-goals) — an embedder supplies it. For the
// wasm build, the embedder is the wasm host, reached through the
// fetch_module/free_module/get_last_fetch_error import trio (spec.md
// §4.6, §6). This file wires HTTPFetchFunc and MediaWikiFetchFunc
// (declared in external.go) against those imports so require() of a
// remote spec works the same way under wasm as it does when a native
// embedder supplies its own net/http-backed fetch function.
package resolver

import (
	"fmt"
	"sync"
	"unsafe"
)

// liveWasmBuffers pins the URL buffers this file allocates for the
// duration of a fetch_module/get_last_fetch_error call, the same
// discipline internal/ffi uses for its own linear-memory buffers.
var liveWasmBuffers sync.Map

//go:wasmimport rdflua_host fetch_module
func hostFetchModule(urlPtr, lenOutPtr uint32) uint32

//go:wasmimport rdflua_host free_module
func hostFreeModule(ptr uint32)

//go:wasmimport rdflua_host get_last_fetch_error
func hostGetLastFetchError(lenOutPtr uint32) uint32

// WasmHTTPFetch implements HTTPFetchFunc against the fetch_module
// import, for require("http://…") and require("https://…") under the
// wasm build.
func WasmHTTPFetch(url string) (string, error) {
	return wasmFetchModule(url)
}

// WasmMediaWikiFetch implements MediaWikiFetchFunc against the same
// fetch_module import, encoding (host, module) back into a single URL
// the wasm host's importer can interpret.
func WasmMediaWikiFetch(host, module string) (string, error) {
	return wasmFetchModule("mediawiki://" + host + "/" + module)
}

func wasmFetchModule(url string) (string, error) {
	urlPtr := writeCString(url)
	defer releaseWasmBuf(urlPtr)

	lenOut := make([]uint32, 1)
	lenOutPtr := uint32(uintptr(unsafe.Pointer(&lenOut[0])))

	bytesPtr := hostFetchModule(urlPtr, lenOutPtr)
	if bytesPtr == 0 {
		errPtr := hostGetLastFetchError(lenOutPtr)
		if errPtr == 0 {
			return "", fmt.Errorf("fetch_module(%q) failed with no error message", url)
		}
		msg := readBytes(errPtr, lenOut[0])
		hostFreeModule(errPtr)
		return "", fmt.Errorf("fetch_module(%q): %s", url, msg)
	}
	src := readBytes(bytesPtr, lenOut[0])
	hostFreeModule(bytesPtr)
	return src, nil
}

func readBytes(ptr uint32, n uint32) string {
	if ptr == 0 || n == 0 {
		return ""
	}
	base := unsafe.Pointer(uintptr(ptr))
	return string(unsafe.Slice((*byte)(base), n))
}

func writeCString(s string) uint32 {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	if len(buf) == 0 {
		return 0
	}
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	liveWasmBuffers.Store(ptr, buf)
	return ptr
}

func releaseWasmBuf(ptr uint32) {
	liveWasmBuffers.Delete(ptr)
}
