// Package firestore implements the document-store port on Cloud
// Firestore, the store the production deployment runs on. Batches are
// executed inside a Firestore transaction, which gives the same
// all-or-nothing guarantee the core assumes.
package firestore

import (
	"context"
	"fmt"
	"log/slog"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// Store is a Firestore-backed DocumentStore.
type Store struct {
	client *fs.Client
	logger *slog.Logger
}

// New connects to the given Firestore project. credentialsFile may be
// empty, in which case application default credentials apply.
func New(ctx context.Context, projectID, credentialsFile string, logger *slog.Logger) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := fs.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to firestore project %s: %w", projectID, err)
	}
	return &Store{client: client, logger: logger}, nil
}

var _ storage.DocumentStore = (*Store)(nil)

func (s *Store) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return storage.Document{}, apperrors.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return storage.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *Store) Query(ctx context.Context, collection string, pred *storage.Predicate) ([]storage.Document, error) {
	var snaps []*fs.DocumentSnapshot
	var err error
	if pred != nil {
		snaps, err = s.client.Collection(collection).Where(pred.Field, "==", pred.Value).Documents(ctx).GetAll()
	} else {
		snaps, err = s.client.Collection(collection).Documents(ctx).GetAll()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	docs := make([]storage.Document, len(snaps))
	for i, snap := range snaps {
		docs[i] = storage.Document{ID: snap.Ref.ID, Data: snap.Data()}
	}
	return docs, nil
}

func (s *Store) Subscribe(ctx context.Context, collection string) (<-chan []storage.Document, error) {
	iter := s.client.Collection(collection).Snapshots(ctx)
	out := make(chan []storage.Document)
	go func() {
		defer close(out)
		defer iter.Stop()
		for {
			qs, err := iter.Next()
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error("firestore snapshot stream ended", slog.String("collection", collection), slog.String("error", err.Error()))
				}
				return
			}
			snaps, err := qs.Documents.GetAll()
			if err != nil {
				s.logger.Error("reading firestore snapshot", slog.String("collection", collection), slog.String("error", err.Error()))
				continue
			}
			docs := make([]storage.Document, len(snaps))
			for i, snap := range snaps {
				docs[i] = storage.Document{ID: snap.Ref.ID, Data: snap.Data()}
			}
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
	return s.client.Close()
}

type stagedOp func(tx *fs.Transaction) error

// batch stages writes and commits them in one Firestore transaction.
type batch struct {
	store *Store
	ops   []stagedOp
}

func (b *batch) ref(collection, id string) *fs.DocumentRef {
	return b.store.client.Collection(collection).Doc(id)
}

func (b *batch) Set(collection, id string, data map[string]any) {
	ref := b.ref(collection, id)
	b.ops = append(b.ops, func(tx *fs.Transaction) error {
		return tx.Set(ref, data)
	})
}

func (b *batch) Update(collection, id string, fields map[string]any) {
	ref := b.ref(collection, id)
	updates := make([]fs.Update, 0, len(fields))
	for field, value := range fields {
		updates = append(updates, fs.Update{Path: field, Value: value})
	}
	b.ops = append(b.ops, func(tx *fs.Transaction) error {
		return tx.Update(ref, updates)
	})
}

func (b *batch) Increment(collection, id, field string, delta int64) {
	ref := b.ref(collection, id)
	b.ops = append(b.ops, func(tx *fs.Transaction) error {
		return tx.Update(ref, []fs.Update{{Path: field, Value: fs.Increment(delta)}})
	})
}

func (b *batch) Delete(collection, id string) {
	ref := b.ref(collection, id)
	b.ops = append(b.ops, func(tx *fs.Transaction) error {
		return tx.Delete(ref)
	})
}

func (b *batch) Commit(ctx context.Context) error {
	err := b.store.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		for _, op := range b.ops {
			if err := op(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return nil
}
