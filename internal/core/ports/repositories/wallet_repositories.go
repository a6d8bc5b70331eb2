package repositories

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
)

// WalletReader defines read operations for wallet data.
type WalletReader interface {
	// FindWalletByID retrieves one wallet by id.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// ListWallets retrieves every wallet.
	ListWallets(ctx context.Context) ([]domain.Wallet, error)

	// WatchWallets streams the full wallet set on every change.
	WatchWallets(ctx context.Context) (<-chan []domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data.
// Balance changes are NOT here: they only happen inside ledger batches.
type WalletWriter interface {
	// SaveWallet persists a wallet document.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// DeleteWallet removes the wallet document. The transaction history
	// referencing it is kept.
	DeleteWallet(ctx context.Context, walletID string) error
}

// WalletRepositoryFacade combines all wallet repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
