package services

// ServiceContainer holds all service facades handed to the HTTP layer.
type ServiceContainer struct {
	Wallet WalletSvcFacade
	Card   CardSvcFacade
	Ledger LedgerSvcFacade
	Budget BudgetSvcFacade
	Fixed  FixedSvcFacade
}
