// Package pgsql implements the document-store port on PostgreSQL,
// keeping every record as a jsonb row in a single documents table.
// Batches run inside one database transaction. Subscriptions are
// polled: the table is small (two users' finances) so re-reading a
// collection on an interval is cheaper than wiring LISTEN/NOTIFY.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

const pollInterval = 2 * time.Second

// Store is a PostgreSQL-backed DocumentStore.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New connects a pgx pool to the given database URL and verifies the
// connection with a ping.
func New(ctx context.Context, databaseURL string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

var _ storage.DocumentStore = (*Store)(nil)

func (s *Store) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Document{}, apperrors.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return decodeDocument(id, raw)
}

func (s *Store) Query(ctx context.Context, collection string, pred *storage.Predicate) ([]storage.Document, error) {
	var rows pgx.Rows
	var err error
	if pred != nil {
		// Matching through jsonb keeps the predicate server-side, the
		// same single-equality capability the other backends offer.
		filter, merr := json.Marshal(map[string]any{pred.Field: pred.Value})
		if merr != nil {
			return nil, fmt.Errorf("%w: encoding predicate: %v", apperrors.ErrStorage, merr)
		}
		rows, err = s.pool.Query(ctx,
			`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY id`,
			collection, filter)
	} else {
		rows, err = s.pool.Query(ctx,
			`SELECT id, data FROM documents WHERE collection = $1 ORDER BY id`,
			collection)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var docs []storage.Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
		}
		doc, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return docs, nil
}

func (s *Store) Subscribe(ctx context.Context, collection string) (<-chan []storage.Document, error) {
	initial, err := s.Query(ctx, collection, nil)
	if err != nil {
		return nil, err
	}
	out := make(chan []storage.Document, 1)
	out <- initial
	go func() {
		defer close(out)
		last := initial
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			docs, err := s.Query(ctx, collection, nil)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error("polling collection", slog.String("collection", collection), slog.String("error", err.Error()))
				}
				continue
			}
			if reflect.DeepEqual(docs, last) {
				continue
			}
			last = docs
			select {
			case out <- docs:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *Store) NewBatch() storage.Batch {
	return &batch{store: s}
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func decodeDocument(id string, raw []byte) (storage.Document, error) {
	data := map[string]any{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return storage.Document{}, fmt.Errorf("%w: decoding document %s: %v", apperrors.ErrStorage, id, err)
	}
	return storage.Document{ID: id, Data: data}, nil
}

type stagedOp func(ctx context.Context, tx pgx.Tx) error

// batch stages writes and commits them in one database transaction.
type batch struct {
	store *Store
	ops   []stagedOp
}

func (b *batch) Set(collection, id string, data map[string]any) {
	b.ops = append(b.ops, func(ctx context.Context, tx pgx.Tx) error {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encoding document %s: %w", id, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
			 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
			collection, id, raw)
		return err
	})
}

func (b *batch) Update(collection, id string, fields map[string]any) {
	b.ops = append(b.ops, func(ctx context.Context, tx pgx.Tx) error {
		raw, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("encoding update for %s: %w", id, err)
		}
		tag, err := tx.Exec(ctx,
			`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
			collection, id, raw)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("updating %s/%s: %w", collection, id, apperrors.ErrNotFound)
		}
		return nil
	})
}

func (b *batch) Increment(collection, id, field string, delta int64) {
	b.ops = append(b.ops, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE documents
			 SET data = jsonb_set(data, ARRAY[$3],
			     to_jsonb(COALESCE((data->>$3)::bigint, 0) + $4))
			 WHERE collection = $1 AND id = $2`,
			collection, id, field, delta)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("incrementing %s/%s: %w", collection, id, apperrors.ErrNotFound)
		}
		return nil
	})
}

func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM documents WHERE collection = $1 AND id = $2`,
			collection, id)
		return err
	})
}

func (b *batch) Commit(ctx context.Context) error {
	err := pgx.BeginFunc(ctx, b.store.pool, func(tx pgx.Tx) error {
		for _, op := range b.ops {
			if err := op(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return nil
}
