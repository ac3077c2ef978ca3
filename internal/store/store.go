// Package store defines the host store contract (C2): the capability
// set an embedder's triple store must, and may, implement.
package store

import "github.com/zot/rdflua/internal/rdf"

// SyncStore is the required capability set: insert, delete, query, all
// returning immediately.
type SyncStore interface {
	Insert(subject, predicate string, object any) error
	Delete(subject, predicate string, object any, hasObject bool) error
	Query(pattern rdf.Pattern) ([]rdf.Triple, error)
}

// AsyncStore is the alternative required capability set for a backend
// whose operations may return a deferred result. A store declares
// itself asynchronous by implementing this interface instead of
// SyncStore (see DESIGN.md Open Question 3): capability is declared at
// construction, never sniffed from a constructor name.
type AsyncStore interface {
	InsertAsync(subject, predicate string, object any) <-chan error
	DeleteAsync(subject, predicate string, object any, hasObject bool) <-chan error
	QueryAsync(pattern rdf.Pattern) <-chan QueryResult
}

// QueryResult is the deferred result of an AsyncStore query.
type QueryResult struct {
	Triples []rdf.Triple
	Err     error
}

// BatchInserter is the optional batch-insert capability. Callers that
// type-assert for it and find it missing must fall back to per-triple
// Insert.
type BatchInserter interface {
	BatchInsert(triples []rdf.Triple) error
}

// Transactor is the optional transaction capability. Absence means
// callers must not assume atomicity across a sequence of operations.
type Transactor interface {
	Transaction(body func(tx Tx) error) error
}

// Tx is the operation set available inside a transaction body.
type Tx interface {
	Insert(subject, predicate string, object any) error
	Delete(subject, predicate string, object any, hasObject bool) error
}
