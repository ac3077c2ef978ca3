package ffi

import (
	"strings"
	"testing"

	"github.com/zot/rdflua/internal/rdf"
	"github.com/zot/rdflua/internal/store"
)

func TestUninitializedSlotReturnsWireError(t *testing.T) {
	reg := NewRegistry()
	if got := Insert(reg, Handle(""), "s", "p", `"o"`); got != uninitializedError {
		t.Errorf("Insert on empty slot = %q, want %q", got, uninitializedError)
	}
	if got := Query(reg, Handle("bogus"), `{}`); got != uninitializedError {
		t.Errorf("Query on unknown handle = %q, want %q", got, uninitializedError)
	}
}

func TestInsertQueryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	h := reg.Acquire(store.NewMemoryStore())
	defer reg.Release(h)

	if got := Insert(reg, h, "user:alice", "name", `"Alice"`); got != "OK" {
		t.Fatalf("Insert = %q, want OK", got)
	}
	if got := Insert(reg, h, "user:alice", "age", `30`); got != "OK" {
		t.Fatalf("Insert = %q, want OK", got)
	}
	result := Query(reg, h, `{"subject":"user:alice"}`)
	if strings.HasPrefix(result, "ERROR:") {
		t.Fatalf("Query returned error: %s", result)
	}
	if !strings.Contains(result, "Alice") {
		t.Errorf("expected query result to contain Alice, got %s", result)
	}
}

func TestMalformedPayloadYieldsStructuredError(t *testing.T) {
	reg := NewRegistry()
	h := reg.Acquire(store.NewMemoryStore())
	defer reg.Release(h)

	if got := Insert(reg, h, "s", "p", `{not json`); !strings.HasPrefix(got, "ERROR:") {
		t.Errorf("expected malformed JSON to yield ERROR:, got %q", got)
	}
	if got := Query(reg, h, `not json at all`); !strings.HasPrefix(got, "ERROR:") {
		t.Errorf("expected malformed pattern to yield ERROR:, got %q", got)
	}
}

func TestDeleteWildcardVsExact(t *testing.T) {
	reg := NewRegistry()
	ms := store.NewMemoryStore()
	h := reg.Acquire(ms)
	defer reg.Release(h)

	Insert(reg, h, "x", "tag", `"a"`)
	Insert(reg, h, "x", "tag", `"b"`)
	if got := Delete(reg, h, "x", "tag", ""); got != "OK" {
		t.Fatalf("Delete = %q, want OK", got)
	}
	if ms.Count() != 0 {
		t.Errorf("expected wildcard delete to remove all matching triples, got %d remaining", ms.Count())
	}
}

func TestBatchInsertFallsBackWithoutBatchInserter(t *testing.T) {
	reg := NewRegistry()
	h := reg.Acquire(&nonBatchingStore{inner: store.NewMemoryStore()})
	defer reg.Release(h)

	got := BatchInsert(reg, h, `[{"subject":"a","predicate":"p","object":"1"},{"subject":"b","predicate":"p","object":"2"}]`)
	if got != "OK" {
		t.Fatalf("BatchInsert = %q, want OK", got)
	}
}

// nonBatchingStore wraps MemoryStore but hides the BatchInsert method so
// BatchInsert must fall back to per-triple Insert.
type nonBatchingStore struct {
	inner *store.MemoryStore
}

func (n *nonBatchingStore) Insert(subject, predicate string, object any) error {
	return n.inner.Insert(subject, predicate, object)
}

func (n *nonBatchingStore) Delete(subject, predicate string, object any, hasObject bool) error {
	return n.inner.Delete(subject, predicate, object, hasObject)
}

func (n *nonBatchingStore) Query(p rdf.Pattern) ([]rdf.Triple, error) {
	return n.inner.Query(p)
}
