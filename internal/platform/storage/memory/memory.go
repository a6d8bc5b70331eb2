// Package memory implements the document-store port in process.
// It backs tests and local development and mirrors the semantics the
// core relies on: per-field atomic increments, all-or-nothing batches
// and full-snapshot subscriptions.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// Store is an in-memory DocumentStore safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	subscribers map[string][]chan []storage.Document
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]any),
		subscribers: make(map[string][]chan []storage.Document),
	}
}

var _ storage.DocumentStore = (*Store)(nil)

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// snapshotLocked builds the full ordered document set of a collection.
func (s *Store) snapshotLocked(collection string) []storage.Document {
	col := s.collections[collection]
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	docs := make([]storage.Document, len(ids))
	for i, id := range ids {
		docs[i] = storage.Document{ID: id, Data: cloneData(col[id])}
	}
	return docs
}

func (s *Store) Get(_ context.Context, collection, id string) (storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return storage.Document{}, apperrors.ErrNotFound
	}
	return storage.Document{ID: id, Data: cloneData(data)}, nil
}

func (s *Store) Query(_ context.Context, collection string, pred *storage.Predicate) ([]storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.snapshotLocked(collection)
	if pred == nil {
		return docs, nil
	}
	matched := docs[:0]
	for _, doc := range docs {
		if doc.Data[pred.Field] == pred.Value {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func (s *Store) Subscribe(ctx context.Context, collection string) (<-chan []storage.Document, error) {
	s.mu.Lock()
	ch := make(chan []storage.Document, 1)
	ch <- s.snapshotLocked(collection)
	s.subscribers[collection] = append(s.subscribers[collection], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		subs := s.subscribers[collection]
		for i, sub := range subs {
			if sub == ch {
				s.subscribers[collection] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// notifyLocked re-delivers the full snapshot of each touched collection.
// Slow subscribers drop intermediate snapshots instead of blocking the
// writer; they always see the latest state next.
func (s *Store) notifyLocked(collections map[string]struct{}) {
	for collection := range collections {
		snapshot := s.snapshotLocked(collection)
		for _, ch := range s.subscribers[collection] {
			select {
			case ch <- snapshot:
			default:
				select {
				case <-ch:
				default:
				}
				select {
				case ch <- snapshot:
				default:
				}
			}
		}
	}
}

func (s *Store) NewBatch() storage.Batch {
	return &batch{store: s}
}

func (s *Store) Close() error { return nil }

type opKind int

const (
	opSet opKind = iota
	opUpdate
	opIncrement
	opDelete
)

type stagedOp struct {
	kind       opKind
	collection string
	id         string
	data       map[string]any
	field      string
	delta      int64
}

// batch stages operations and applies them under one lock so the batch
// is atomic with respect to every reader and other batches.
type batch struct {
	store *Store
	ops   []stagedOp
}

func (b *batch) Set(collection, id string, data map[string]any) {
	b.ops = append(b.ops, stagedOp{kind: opSet, collection: collection, id: id, data: cloneData(data)})
}

func (b *batch) Update(collection, id string, fields map[string]any) {
	b.ops = append(b.ops, stagedOp{kind: opUpdate, collection: collection, id: id, data: cloneData(fields)})
}

func (b *batch) Increment(collection, id, field string, delta int64) {
	b.ops = append(b.ops, stagedOp{kind: opIncrement, collection: collection, id: id, field: field, delta: delta})
}

func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, stagedOp{kind: opDelete, collection: collection, id: id})
}

func (b *batch) Commit(_ context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	// Validate first: updates and increments against missing documents
	// fail the whole batch before anything is applied.
	for _, op := range b.ops {
		if op.kind != opUpdate && op.kind != opIncrement {
			continue
		}
		if _, ok := b.store.collections[op.collection][op.id]; !ok {
			return fmt.Errorf("%s/%s: %w", op.collection, op.id, apperrors.ErrNotFound)
		}
	}

	touched := make(map[string]struct{})
	for _, op := range b.ops {
		col := b.store.collections[op.collection]
		if col == nil {
			col = make(map[string]map[string]any)
			b.store.collections[op.collection] = col
		}
		switch op.kind {
		case opSet:
			col[op.id] = cloneData(op.data)
		case opUpdate:
			for k, v := range op.data {
				col[op.id][k] = v
			}
		case opIncrement:
			current, _ := col[op.id][op.field].(int64)
			col[op.id][op.field] = current + op.delta
		case opDelete:
			delete(col, op.id)
		}
		touched[op.collection] = struct{}{}
	}
	b.store.notifyLocked(touched)
	return nil
}
