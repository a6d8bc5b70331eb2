package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	WalletRepo      WalletRepositoryFacade
	CardRepo        CardRepositoryFacade
	PurchaseRepo    CardPurchaseRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	BudgetRepo      BudgetRepositoryFacade
	FixedRepo       FixedItemRepositoryFacade
	LedgerRepo      LedgerRepository
}
