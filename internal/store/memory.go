package store

import (
	"sync"

	"github.com/zot/rdflua/internal/rdf"
)

type quad struct {
	subject, predicate, objectCanonical string
}

// MemoryStore is a reference SyncStore backed by a mutex-guarded slice,
// in the shape of the teacher's storage.MemoryStorage: no third-party
// concurrent-map dependency, just sync.RWMutex over a plain slice.
type MemoryStore struct {
	mu    sync.RWMutex
	quads []quad
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(subject, predicate string, object any) error {
	if subject == "" || predicate == "" {
		return rdf.NewError(rdf.BadArgument, "subject and predicate must be non-empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quads = append(m.quads, quad{subject, predicate, rdf.EncodeObject(object)})
	return nil
}

func (m *MemoryStore) Delete(subject, predicate string, object any, hasObject bool) error {
	if subject == "" || predicate == "" {
		return rdf.NewError(rdf.BadArgument, "subject and predicate must be non-empty")
	}
	var objCanon string
	if hasObject {
		objCanon = rdf.EncodeObject(object)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.quads[:0]
	for _, q := range m.quads {
		if q.subject == subject && q.predicate == predicate && (!hasObject || q.objectCanonical == objCanon) {
			continue
		}
		kept = append(kept, q)
	}
	m.quads = kept
	return nil
}

func (m *MemoryStore) Query(pattern rdf.Pattern) ([]rdf.Triple, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rdf.Triple, 0, len(m.quads))
	for _, q := range m.quads {
		if !pattern.Matches(q.subject, q.predicate, q.objectCanonical) {
			continue
		}
		out = append(out, rdf.Triple{
			Subject:   q.subject,
			Predicate: q.predicate,
			Object:    rdf.DecodeObject(q.objectCanonical),
		})
	}
	return out, nil
}

// BatchInsert implements BatchInserter more efficiently than N calls to
// Insert by taking the lock once.
func (m *MemoryStore) BatchInsert(triples []rdf.Triple) error {
	for _, t := range triples {
		if t.Subject == "" || t.Predicate == "" {
			return rdf.NewError(rdf.BadArgument, "subject and predicate must be non-empty")
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range triples {
		m.quads = append(m.quads, quad{t.Subject, t.Predicate, rdf.EncodeObject(t.Object)})
	}
	return nil
}

// Count reports the current number of stored triples, mainly for tests.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.quads)
}
