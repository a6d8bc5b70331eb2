package docstore

import (
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// NewRepositoryProvider wires every typed repository over one store.
func NewRepositoryProvider(store storage.DocumentStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:      NewWalletRepository(store),
		CardRepo:        NewCardRepository(store),
		PurchaseRepo:    NewCardPurchaseRepository(store),
		TransactionRepo: NewTransactionRepository(store),
		BudgetRepo:      NewBudgetRepository(store),
		FixedRepo:       NewFixedItemRepository(store),
		LedgerRepo:      NewLedgerRepository(store),
	}
}
