// Package ffi implements the FFI Bridge (C4): the active-store slot and
// the four synchronous bridge entry points the embedded VM calls into.
package ffi

import (
	"sync"

	"github.com/google/uuid"

	"github.com/zot/rdflua/internal/store"
)

// Handle is an opaque per-invocation handle keying a slot in the
// Registry. The zero value never maps to a slot, so a VM that never
// acquired one (or whose acquisition failed) naturally observes
// "store not initialized" on every State.* call (spec.md §4.4, §8
// scenario 6).
type Handle string

// Registry is the active-store slot: per-invocation slots keyed by an
// opaque handle, satisfying the concurrency requirement that overlapping
// lua_run invocations never cross-route State.* calls to each other's
// store (spec.md §5).
type Registry struct {
	mu    sync.RWMutex
	slots map[Handle]store.SyncStore
}

// NewRegistry creates an empty slot registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[Handle]store.SyncStore)}
}

// Acquire publishes s into a freshly minted slot and returns its handle.
func (r *Registry) Acquire(s store.SyncStore) Handle {
	h := Handle(uuid.NewString())
	r.mu.Lock()
	r.slots[h] = s
	r.mu.Unlock()
	return h
}

// Release clears the slot for h. It is safe to call with a handle that
// was never acquired (the zero Handle, or one already released).
func (r *Registry) Release(h Handle) {
	if h == "" {
		return
	}
	r.mu.Lock()
	delete(r.slots, h)
	r.mu.Unlock()
}

// Get returns the store published under h, if any.
func (r *Registry) Get(h Handle) (store.SyncStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[h]
	return s, ok
}
