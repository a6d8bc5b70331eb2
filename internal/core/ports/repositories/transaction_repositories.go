package repositories

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
)

// TransactionReader defines read operations for the transaction ledger.
// Each method maps to at most one server-side equality predicate; any
// month/category narrowing happens in the services.
type TransactionReader interface {
	// FindTransactionByID retrieves one ledger entry by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves the whole ledger.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByType retrieves entries of one type (entrada/saida).
	ListTransactionsByType(ctx context.Context, txnType domain.TransactionType) ([]domain.Transaction, error)

	// ListTransactionsByWallet retrieves the entries of one wallet.
	ListTransactionsByWallet(ctx context.Context, walletID string) ([]domain.Transaction, error)
}

// TransactionRepositoryFacade combines the transaction interfaces.
// There is deliberately no standalone writer: ledger entries are only
// written or deleted inside atomic ledger batches.
type TransactionRepositoryFacade interface {
	TransactionReader
}
