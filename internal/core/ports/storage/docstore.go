// Package storage defines the capability-limited contract the core
// consumes from the external document store. Only per-document CRUD, a
// single server-side equality predicate, full-snapshot subscriptions and
// atomic multi-document batches are assumed; all further narrowing is
// done in-process by the services.
package storage

import "context"

// Collection names, stable across the system.
const (
	CollectionTransactions  = "transactions"
	CollectionWallets       = "wallets"
	CollectionCards         = "cards"
	CollectionBudgets       = "budgets"
	CollectionCardPurchases = "cardsShopping"
	CollectionFixedExpenses = "livingExpenses"
	CollectionFixedIncomes  = "fixedEntries"
	CollectionAllowedUsers  = "allowed_users"
)

// Document is one stored record: an id plus its field map.
type Document struct {
	ID   string
	Data map[string]any
}

// Predicate is a single-field equality filter. It is the only
// server-side filtering the store is assumed to support reliably.
type Predicate struct {
	Field string
	Value any
}

// Batch stages writes that commit atomically: either every staged
// operation persists or none do. A failed Commit leaves no partial
// state and is therefore safe to retry as a whole.
type Batch interface {
	// Set creates or fully replaces a document.
	Set(collection, id string, data map[string]any)

	// Update merges the given fields into an existing document.
	// Committing an update against a missing document fails the batch.
	Update(collection, id string, fields map[string]any)

	// Increment atomically adds delta to a numeric field. Concurrent
	// increments from both users commute, which is what makes shared
	// balance counters safe without locking.
	Increment(collection, id, field string, delta int64)

	// Delete removes a document. Deleting a missing document is a no-op.
	Delete(collection, id string)

	// Commit applies all staged operations in one atomic write.
	Commit(ctx context.Context) error
}

// DocumentStore is the persistence collaborator. Implementations wrap
// Firestore, a jsonb table, or an in-memory map; none of them add
// retries or timeouts beyond what their client library provides.
type DocumentStore interface {
	// Get fetches one document, apperrors.ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Query returns the documents matching the predicate, or the whole
	// collection when pred is nil.
	Query(ctx context.Context, collection string, pred *Predicate) ([]Document, error)

	// Subscribe streams the full current document set of a collection,
	// re-delivered on every change (snapshots, not deltas). The stream
	// closes when ctx is done.
	Subscribe(ctx context.Context, collection string) (<-chan []Document, error)

	// NewBatch starts an empty atomic batch.
	NewBatch() Batch

	// Close releases the underlying client.
	Close() error
}
