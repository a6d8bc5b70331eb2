package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// TransactionRepository reads the transactions collection. Writes only
// happen through ledger batches, so there is no writer here.
type TransactionRepository struct {
	store storage.DocumentStore
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store storage.DocumentStore) *TransactionRepository {
	return &TransactionRepository{store: store}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func encodeTransaction(t domain.Transaction) map[string]any {
	data := map[string]any{
		"description": t.Description,
		"value":       int64(t.Value),
		"type":        string(t.Type),
		"category":    t.Category,
		"date":        t.Date.UTC().Format(time.RFC3339Nano),
		"walletId":    t.WalletID,
		"walletName":  t.WalletName,
	}
	if t.PaymentMethod != "" {
		data["paymentMethod"] = t.PaymentMethod
	}
	return data
}

func decodeTransaction(doc storage.Document) domain.Transaction {
	return domain.Transaction{
		TransactionID: doc.ID,
		Description:   readString(doc.Data, "description"),
		Value:         readMoney(doc.Data, "value"),
		Type:          domain.TransactionType(readString(doc.Data, "type")),
		Category:      readString(doc.Data, "category"),
		Date:          readTime(doc.Data, "date"),
		WalletID:      readString(doc.Data, "walletId"),
		WalletName:    readString(doc.Data, "walletName"),
		PaymentMethod: readString(doc.Data, "paymentMethod"),
	}
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	doc, err := r.store.Get(ctx, storage.CollectionTransactions, transactionID)
	if err != nil {
		return nil, err
	}
	txn := decodeTransaction(doc)
	return &txn, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return r.query(ctx, nil)
}

func (r *TransactionRepository) ListTransactionsByType(ctx context.Context, txnType domain.TransactionType) ([]domain.Transaction, error) {
	return r.query(ctx, &storage.Predicate{Field: "type", Value: string(txnType)})
}

func (r *TransactionRepository) ListTransactionsByWallet(ctx context.Context, walletID string) ([]domain.Transaction, error) {
	return r.query(ctx, &storage.Predicate{Field: "walletId", Value: walletID})
}

func (r *TransactionRepository) query(ctx context.Context, pred *storage.Predicate) ([]domain.Transaction, error) {
	docs, err := r.store.Query(ctx, storage.CollectionTransactions, pred)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	txns := make([]domain.Transaction, len(docs))
	for i, doc := range docs {
		txns[i] = decodeTransaction(doc)
	}
	return txns, nil
}
