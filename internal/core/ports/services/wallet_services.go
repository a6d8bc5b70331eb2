package services

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/couplefin/couple_finance_app/internal/dto"
)

// WalletSvcFacade exposes wallet management and balance views.
type WalletSvcFacade interface {
	// CreateWallet registers a new wallet with an optional opening balance.
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error)

	// GetWallet retrieves one wallet.
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)

	// ListWallets retrieves every wallet.
	ListWallets(ctx context.Context) ([]domain.Wallet, error)

	// DeleteWallet removes a wallet, keeping its transaction history.
	DeleteWallet(ctx context.Context, walletID string) error

	// TotalBalance sums the cached balances across all wallets.
	TotalBalance(ctx context.Context) (domain.Money, error)

	// RecomputeBalance is the reconciliation backstop: it rebuilds the
	// cached balance from the wallet's ledger entries and overwrites it
	// in one batch, returning the reconciled wallet.
	RecomputeBalance(ctx context.Context, walletID string) (*domain.Wallet, error)

	// WatchWallets streams the full wallet set on every change.
	WatchWallets(ctx context.Context) (<-chan []domain.Wallet, error)
}
