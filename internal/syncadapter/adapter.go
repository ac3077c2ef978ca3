// Package syncadapter implements the host-side synchronous façade (C3)
// over a possibly-asynchronous triple store: an in-memory cache answers
// reads immediately while writes are enqueued for background
// write-through.
package syncadapter

import (
	"sync"

	"github.com/zot/rdflua/internal/config"
	"github.com/zot/rdflua/internal/rdf"
	"github.com/zot/rdflua/internal/store"
)

type quad struct {
	subject, predicate, objectCanonical string
}

type opKind int

const (
	opInsert opKind = iota
	opDelete
	opBatch
)

type writeOp struct {
	kind      opKind
	subject   string
	predicate string
	object    any
	hasObject bool
	triples   []rdf.Triple
}

// Adapter turns a store.AsyncStore into a store.SyncStore, backed by an
// in-memory cache that is authoritative within one invocation (§4.3).
// It also implements store.BatchInserter.
type Adapter struct {
	async   store.AsyncStore
	logger  *config.Logger
	mu      sync.RWMutex
	quads   []quad
	writeCh chan writeOp
	wg      sync.WaitGroup
}

// New constructs an Adapter over async, starting its background
// write-through worker. The cache begins empty; callers that need
// prior state visible should call WarmUp.
func New(async store.AsyncStore, logger *config.Logger) *Adapter {
	a := &Adapter{
		async:   async,
		logger:  logger,
		writeCh: make(chan writeOp, 256),
	}
	a.wg.Add(1)
	go a.runWriter()
	return a
}

// WarmUp seeds the cache from an initial snapshot of the backing store.
// The core does not mandate this operation (§4.3 "Cold start"); it is
// provided for embedders whose backing store already holds state.
func (a *Adapter) WarmUp(triples []rdf.Triple) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range triples {
		a.quads = append(a.quads, quad{t.Subject, t.Predicate, rdf.EncodeObject(t.Object)})
	}
}

func (a *Adapter) Insert(subject, predicate string, object any) error {
	if subject == "" || predicate == "" {
		return rdf.NewError(rdf.BadArgument, "subject and predicate must be non-empty")
	}
	a.mu.Lock()
	a.quads = append(a.quads, quad{subject, predicate, rdf.EncodeObject(object)})
	a.mu.Unlock()
	a.enqueue(writeOp{kind: opInsert, subject: subject, predicate: predicate, object: object})
	return nil
}

func (a *Adapter) Delete(subject, predicate string, object any, hasObject bool) error {
	if subject == "" || predicate == "" {
		return rdf.NewError(rdf.BadArgument, "subject and predicate must be non-empty")
	}
	var objCanon string
	if hasObject {
		objCanon = rdf.EncodeObject(object)
	}
	a.mu.Lock()
	kept := a.quads[:0]
	for _, q := range a.quads {
		if q.subject == subject && q.predicate == predicate && (!hasObject || q.objectCanonical == objCanon) {
			continue
		}
		kept = append(kept, q)
	}
	a.quads = kept
	a.mu.Unlock()
	a.enqueue(writeOp{kind: opDelete, subject: subject, predicate: predicate, object: object, hasObject: hasObject})
	return nil
}

func (a *Adapter) Query(pattern rdf.Pattern) ([]rdf.Triple, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]rdf.Triple, 0, len(a.quads))
	for _, q := range a.quads {
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

func (a *Adapter) BatchInsert(triples []rdf.Triple) error {
	for _, t := range triples {
		if t.Subject == "" || t.Predicate == "" {
			return rdf.NewError(rdf.BadArgument, "subject and predicate must be non-empty")
		}
	}
	a.mu.Lock()
	for _, t := range triples {
		a.quads = append(a.quads, quad{t.Subject, t.Predicate, rdf.EncodeObject(t.Object)})
	}
	a.mu.Unlock()
	a.enqueue(writeOp{kind: opBatch, triples: triples})
	return nil
}

func (a *Adapter) enqueue(op writeOp) {
	a.writeCh <- op
}

func (a *Adapter) runWriter() {
	defer a.wg.Done()
	for op := range a.writeCh {
		a.applyWriteThrough(op)
	}
}

func (a *Adapter) applyWriteThrough(op writeOp) {
	var err error
	switch op.kind {
	case opInsert:
		err = <-a.async.InsertAsync(op.subject, op.predicate, op.object)
	case opDelete:
		err = <-a.async.DeleteAsync(op.subject, op.predicate, op.object, op.hasObject)
	case opBatch:
		if batcher, ok := a.async.(interface {
			BatchInsertAsync([]rdf.Triple) <-chan error
		}); ok {
			err = <-batcher.BatchInsertAsync(op.triples)
		} else {
			for _, t := range op.triples {
				if e := <-a.async.InsertAsync(t.Subject, t.Predicate, t.Object); e != nil {
					err = e
				}
			}
		}
	}
	if err != nil {
		a.logger.Log(config.LevelWarn, "[syncadapter] background write-through failed: %v", err)
	}
}

// Close stops the background writer once its queue drains. Background
// failures already logged are not retried; this is a best-effort
// shutdown, not a flush guarantee beyond draining what was enqueued.
func (a *Adapter) Close() {
	close(a.writeCh)
	a.wg.Wait()
}
