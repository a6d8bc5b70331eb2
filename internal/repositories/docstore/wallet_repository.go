package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// WalletRepository persists wallets in the wallets collection.
type WalletRepository struct {
	store storage.DocumentStore
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(store storage.DocumentStore) *WalletRepository {
	return &WalletRepository{store: store}
}

var _ portsrepo.WalletRepositoryFacade = (*WalletRepository)(nil)

func encodeWallet(w domain.Wallet) map[string]any {
	return map[string]any{
		"name":           w.Name,
		"type":           string(w.Type),
		"currentBalance": int64(w.CurrentBalance),
		"initialBalance": int64(w.InitialBalance),
		"color":          w.Color,
		"createdAt":      w.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeWallet(doc storage.Document) domain.Wallet {
	return domain.Wallet{
		WalletID:       doc.ID,
		Name:           readString(doc.Data, "name"),
		Type:           domain.WalletType(readString(doc.Data, "type")),
		CurrentBalance: readMoney(doc.Data, "currentBalance"),
		InitialBalance: readMoney(doc.Data, "initialBalance"),
		Color:          readString(doc.Data, "color"),
		CreatedAt:      readTime(doc.Data, "createdAt"),
	}
}

func (r *WalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	batch := r.store.NewBatch()
	batch.Set(storage.CollectionWallets, wallet.WalletID, encodeWallet(wallet))
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("saving wallet %s: %w", wallet.WalletID, err)
	}
	return nil
}

func (r *WalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	doc, err := r.store.Get(ctx, storage.CollectionWallets, walletID)
	if err != nil {
		return nil, err
	}
	wallet := decodeWallet(doc)
	return &wallet, nil
}

func (r *WalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	docs, err := r.store.Query(ctx, storage.CollectionWallets, nil)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	wallets := make([]domain.Wallet, len(docs))
	for i, doc := range docs {
		wallets[i] = decodeWallet(doc)
	}
	return wallets, nil
}

func (r *WalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	batch := r.store.NewBatch()
	batch.Delete(storage.CollectionWallets, walletID)
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("deleting wallet %s: %w", walletID, err)
	}
	return nil
}

func (r *WalletRepository) WatchWallets(ctx context.Context) (<-chan []domain.Wallet, error) {
	raw, err := r.store.Subscribe(ctx, storage.CollectionWallets)
	if err != nil {
		return nil, fmt.Errorf("subscribing to wallets: %w", err)
	}
	return watch(raw, decodeWallet), nil
}
