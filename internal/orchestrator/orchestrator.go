// Package orchestrator implements the Invocation Orchestrator (C7): the
// single entry point that wires one host call to a fresh VM, runs
// source against a store, and returns a JSON-ready response on every
// exit path (spec.md §4.7).
package orchestrator

import (
	"fmt"

	"github.com/zot/rdflua/internal/config"
	"github.com/zot/rdflua/internal/ffi"
	"github.com/zot/rdflua/internal/luavm"
	"github.com/zot/rdflua/internal/resolver"
	"github.com/zot/rdflua/internal/store"
	"github.com/zot/rdflua/internal/syncadapter"
)

// Orchestrator holds the process-wide, shared collaborators an
// invocation needs: the active-store slot registry and the require
// resolver registry. Both are safe for concurrent invocations (spec.md
// §5 "Shared resources").
type Orchestrator struct {
	Registry  *ffi.Registry
	Resolvers *resolver.Registry
	Logger    *config.Logger
}

// New constructs an Orchestrator. Pass a nil Logger to run silently.
func New(resolvers *resolver.Registry, logger *config.Logger) *Orchestrator {
	return &Orchestrator{
		Registry:  ffi.NewRegistry(),
		Resolvers: resolvers,
		Logger:    logger,
	}
}

// Run implements spec.md §4.7's steps 1-7. backing may be nil (no store
// supplied), a store.SyncStore, or a store.AsyncStore; anything else is
// an immediate configuration error. The returned Response is always
// well-formed JSON per §7 "every invocation returns a well-formed JSON
// response".
func (o *Orchestrator) Run(source string, backing any) *luavm.Response {
	var handle ffi.Handle
	if backing != nil {
		syncStore, err := o.normalize(backing)
		if err != nil {
			msg := err.Error()
			return &luavm.Response{Error: &msg}
		}
		handle = o.Registry.Acquire(syncStore)
		defer o.Registry.Release(handle)
	}
	return o.run(source, handle)
}

// run executes source against whichever store handle is already bound
// — via the Registry for the native build, or via the wasm build's own
// package-level active slot (see internal/orchestrator/wasm_exports.go,
// which calls this directly instead of Run since it has no Go-side
// store value to normalize).
func (o *Orchestrator) run(source string, handle ffi.Handle) *luavm.Response {
	resp := &luavm.Response{}

	vm := luavm.New(o.Registry, handle, o.Resolvers)
	defer vm.Close()

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%v", r)
			resp.Error = &msg
			resp.Result = nil
			resp.Output = vm.CapturedOutput()
		}
	}()

	result, execErr := vm.Exec(source)
	resp.Output = vm.CapturedOutput()
	if execErr != nil {
		msg := execErr.Error()
		resp.Error = &msg
		return resp
	}
	resp.Result = result
	return resp
}

// normalize implements step 1: a store declaring store.SyncStore is
// used directly; a store.AsyncStore is wrapped in a Sync Adapter. This
// is a one-shot capability check via type assertion rather than the
// source's structural sniff of a constructor name (DESIGN.md Open
// Question 3).
func (o *Orchestrator) normalize(backing any) (store.SyncStore, error) {
	switch s := backing.(type) {
	case store.SyncStore:
		return s, nil
	case store.AsyncStore:
		return syncadapter.New(s, o.Logger), nil
	default:
		return nil, fmt.Errorf("backing store does not implement SyncStore or AsyncStore")
	}
}
