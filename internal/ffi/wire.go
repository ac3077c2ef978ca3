package ffi

import "fmt"

// uninitializedError is the exact wire message spec.md §4.4 mandates
// for a call that arrives with an empty active-store slot. Shared by
// both the native (bridge.go) and wasm (wasm_bridge.go) rdf_* implementations.
const uninitializedError = "ERROR:RDFStore not initialized"

func wireError(format string, args ...any) string {
	return "ERROR:" + fmt.Sprintf(format, args...)
}
