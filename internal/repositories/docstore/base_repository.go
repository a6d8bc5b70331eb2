// Package docstore adapts the generic document-store port into the
// typed collection facades the services consume. Each repository owns
// the field mapping for one collection; the ledger batch composes
// cross-collection writes into a single atomic commit.
package docstore

import (
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// Document field readers. Stored documents come back with loosely typed
// values depending on the backend (int64 from Firestore and the memory
// store, float64 from jsonb round-trips), so every read normalizes.

func readString(data map[string]any, field string) string {
	if v, ok := data[field].(string); ok {
		return v
	}
	return ""
}

func readInt64(data map[string]any, field string) int64 {
	switch v := data[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func readInt(data map[string]any, field string) int {
	return int(readInt64(data, field))
}

func readMoney(data map[string]any, field string) domain.Money {
	return domain.Money(readInt64(data, field))
}

func readTime(data map[string]any, field string) time.Time {
	switch v := data[field].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// watch decodes a raw subscription stream into typed snapshots.
func watch[T any](raw <-chan []storage.Document, decode func(storage.Document) T) <-chan []T {
	out := make(chan []T)
	go func() {
		defer close(out)
		for docs := range raw {
			typed := make([]T, len(docs))
			for i, doc := range docs {
				typed[i] = decode(doc)
			}
			out <- typed
		}
	}()
	return out
}
