package services

import (
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Wallet = NewWalletService(repos.WalletRepo, repos.TransactionRepo, repos.LedgerRepo)
	container.Card = NewCardService(repos.CardRepo, repos.PurchaseRepo, repos.LedgerRepo)
	container.Ledger = NewLedgerService(repos.WalletRepo, repos.PurchaseRepo, repos.TransactionRepo, repos.FixedRepo, repos.LedgerRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.TransactionRepo, repos.PurchaseRepo, repos.WalletRepo, repos.CardRepo)
	container.Fixed = NewFixedService(repos.FixedRepo)

	return container
}
