//go:build !wasm

// This file implements the rdf_* bridge functions by calling straight
// into a store held in this process's own registry. That is the
// correct shape for the native reference host (cmd/rdflua) and for
// tests, where "the module" and "the host" are the same Go process. In
// the wasm build the module does not hold the store at all — rdf_insert
// etc. are host-supplied imports the module calls out to — so this file
// is replaced there by wasm_bridge.go.
package ffi

import (
	"encoding/json"

	"github.com/zot/rdflua/internal/rdf"
	"github.com/zot/rdflua/internal/store"
)

// Insert implements the rdf_insert import: three UTF-8 strings in,
// "OK" or "ERROR:<msg>" out.
func Insert(reg *Registry, h Handle, subject, predicate, objJSON string) string {
	s, ok := reg.Get(h)
	if !ok {
		return uninitializedError
	}
	var object any
	if objJSON != "" {
		if err := json.Unmarshal([]byte(objJSON), &object); err != nil {
			return wireError("malformed object payload: %v", err)
		}
	}
	if err := s.Insert(subject, predicate, object); err != nil {
		return wireError("%v", err)
	}
	return "OK"
}

// Delete implements the rdf_delete import. An empty objJSON means no
// object was supplied, i.e. a wildcard delete of (subject, predicate, *).
func Delete(reg *Registry, h Handle, subject, predicate, objJSON string) string {
	s, ok := reg.Get(h)
	if !ok {
		return uninitializedError
	}
	var object any
	hasObject := objJSON != ""
	if hasObject {
		if err := json.Unmarshal([]byte(objJSON), &object); err != nil {
			return wireError("malformed object payload: %v", err)
		}
	}
	if err := s.Delete(subject, predicate, object, hasObject); err != nil {
		return wireError("%v", err)
	}
	return "OK"
}

// Query implements the rdf_query import: one JSON pattern in, a JSON
// array of triples (or an error string) out.
func Query(reg *Registry, h Handle, patternJSON string) string {
	s, ok := reg.Get(h)
	if !ok {
		return uninitializedError
	}
	pattern, err := rdf.DecodePattern([]byte(patternJSON))
	if err != nil {
		return wireError("%v", err)
	}
	triples, err := s.Query(pattern)
	if err != nil {
		return wireError("%v", err)
	}
	data, err := rdf.EncodeTriples(triples)
	if err != nil {
		return wireError("%v", err)
	}
	return string(data)
}

// BatchInsert implements the rdf_batch_insert import: a JSON array of
// triples in, "OK" or "ERROR:<msg>" out. Falls back to N sequential
// Insert calls when the store does not implement store.BatchInserter.
func BatchInsert(reg *Registry, h Handle, triplesJSON string) string {
	s, ok := reg.Get(h)
	if !ok {
		return uninitializedError
	}
	triples, err := rdf.DecodeTriples([]byte(triplesJSON))
	if err != nil {
		return wireError("%v", err)
	}
	if batcher, ok := s.(store.BatchInserter); ok {
		if err := batcher.BatchInsert(triples); err != nil {
			return wireError("%v", err)
		}
		return "OK"
	}
	for _, t := range triples {
		if err := s.Insert(t.Subject, t.Predicate, t.Object); err != nil {
			return wireError("%v", err)
		}
	}
	return "OK"
}
