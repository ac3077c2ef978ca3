package syncadapter

import (
	"testing"
	"time"

	"github.com/zot/rdflua/internal/config"
	"github.com/zot/rdflua/internal/rdf"
	"github.com/zot/rdflua/internal/store"
)

func TestReadYourWrites(t *testing.T) {
	async := store.NewAsyncMemoryStore()
	a := New(async, config.NewLogger(0, "[test]"))
	defer a.Close()

	if err := a.Insert("user:alice", "name", "Alice"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	triples, err := a.Query(rdf.Pattern{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple visible immediately, got %d", len(triples))
	}
}

func TestBackgroundWriteThrough(t *testing.T) {
	async := store.NewAsyncMemoryStore()
	a := New(async, config.NewLogger(0, "[test]"))

	if err := a.Insert("x", "tag", "a"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	a.Close() // draining the queue guarantees the background write landed

	backing, err := async.Snapshot().Query(rdf.Pattern{})
	if err != nil {
		t.Fatalf("query backing store: %v", err)
	}
	if len(backing) != 1 {
		t.Fatalf("expected background store to have 1 triple after drain, got %d", len(backing))
	}
}

func TestDeleteWildcardRemovesAll(t *testing.T) {
	async := store.NewAsyncMemoryStore()
	a := New(async, config.NewLogger(0, "[test]"))
	defer a.Close()

	a.Insert("x", "tag", "a")
	a.Insert("x", "tag", "b")
	if err := a.Delete("x", "tag", nil, false); err != nil {
		t.Fatalf("delete: %v", err)
	}
	subject := "x"
	triples, _ := a.Query(rdf.Pattern{Subject: &subject})
	if len(triples) != 0 {
		t.Fatalf("expected wildcard delete to remove all, got %d remaining", len(triples))
	}
}

func TestBatchInsertObservable(t *testing.T) {
	async := store.NewAsyncMemoryStore()
	a := New(async, config.NewLogger(0, "[test]"))
	defer a.Close()

	triples := []rdf.Triple{
		{Subject: "n1", Predicate: "p", Object: "a"},
		{Subject: "n2", Predicate: "p", Object: "b"},
		{Subject: "n3", Predicate: "p", Object: "c"},
	}
	if err := a.BatchInsert(triples); err != nil {
		t.Fatalf("batch insert: %v", err)
	}
	got, _ := a.Query(rdf.Pattern{})
	if len(got) != len(triples) {
		t.Fatalf("expected %d triples observable after batch insert, got %d", len(triples), len(got))
	}
}

func TestAdapterDoesNotBlockOnBackground(t *testing.T) {
	async := store.NewAsyncMemoryStore()
	a := New(async, config.NewLogger(0, "[test]"))
	defer a.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			a.Insert("s", "p", i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("inserts should not block on background write-through")
	}
}
