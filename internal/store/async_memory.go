package store

import "github.com/zot/rdflua/internal/rdf"

// AsyncMemoryStore is a reference AsyncStore: it wraps a MemoryStore but
// answers every operation through a channel populated by a goroutine, so
// it exercises the Sync Adapter (C3) the way a networked or otherwise
// non-blocking backend would. Grounded on the teacher's own idiom of a
// worker goroutine reading off a channel (LuaSession.executorChan in
// internal/lua/runtime.go), generalised to a request-per-call shape.
type AsyncMemoryStore struct {
	inner *MemoryStore
}

func NewAsyncMemoryStore() *AsyncMemoryStore {
	return &AsyncMemoryStore{inner: NewMemoryStore()}
}

func (a *AsyncMemoryStore) InsertAsync(subject, predicate string, object any) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- a.inner.Insert(subject, predicate, object)
	}()
	return ch
}

func (a *AsyncMemoryStore) DeleteAsync(subject, predicate string, object any, hasObject bool) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- a.inner.Delete(subject, predicate, object, hasObject)
	}()
	return ch
}

func (a *AsyncMemoryStore) QueryAsync(pattern rdf.Pattern) <-chan QueryResult {
	ch := make(chan QueryResult, 1)
	go func() {
		triples, err := a.inner.Query(pattern)
		ch <- QueryResult{Triples: triples, Err: err}
	}()
	return ch
}

// Snapshot exposes the backing store for warm-up/inspection in tests;
// production embedders would not normally have this.
func (a *AsyncMemoryStore) Snapshot() *MemoryStore {
	return a.inner
}
