package docstore

import (
	"context"
	"fmt"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// LedgerRepository maps typed ledger batches onto the store's atomic
// document batch, so the paired effects of one financial event commit
// together or not at all.
type LedgerRepository struct {
	store storage.DocumentStore
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store storage.DocumentStore) *LedgerRepository {
	return &LedgerRepository{store: store}
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

func (r *LedgerRepository) NewLedgerBatch() portsrepo.LedgerBatch {
	return &ledgerBatch{batch: r.store.NewBatch()}
}

type ledgerBatch struct {
	batch storage.Batch
}

var _ portsrepo.LedgerBatch = (*ledgerBatch)(nil)

func (b *ledgerBatch) SetTransaction(txn domain.Transaction) {
	b.batch.Set(storage.CollectionTransactions, txn.TransactionID, encodeTransaction(txn))
}

func (b *ledgerBatch) DeleteTransaction(transactionID string) {
	b.batch.Delete(storage.CollectionTransactions, transactionID)
}

func (b *ledgerBatch) AdjustWalletBalance(walletID string, delta domain.Money) {
	b.batch.Increment(storage.CollectionWallets, walletID, "currentBalance", int64(delta))
}

func (b *ledgerBatch) SetWalletBalance(walletID string, balance domain.Money) {
	b.batch.Update(storage.CollectionWallets, walletID, map[string]any{"currentBalance": int64(balance)})
}

func (b *ledgerBatch) SetCardPurchase(purchase domain.CardPurchase) {
	b.batch.Set(storage.CollectionCardPurchases, purchase.PurchaseID, encodePurchase(purchase))
}

func (b *ledgerBatch) MarkPurchasePaid(purchaseID string) {
	b.batch.Update(storage.CollectionCardPurchases, purchaseID, map[string]any{"status": string(domain.PurchasePaid)})
}

func (b *ledgerBatch) Commit(ctx context.Context) error {
	if err := b.batch.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return nil
}
