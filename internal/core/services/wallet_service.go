package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
	"github.com/google/uuid"
)

// walletService implements the WalletSvcFacade interface
type walletService struct {
	BaseService
	walletRepo portsrepo.WalletRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
	ledgerRepo portsrepo.LedgerRepository
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, ledgerRepo portsrepo.LedgerRepository) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		ledgerRepo: ledgerRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	initial := domain.MoneyFromDecimal(req.InitialBalance)
	wallet := domain.Wallet{
		WalletID:       uuid.NewString(),
		Name:           req.Name,
		Type:           req.Type,
		CurrentBalance: initial,
		InitialBalance: initial,
		Color:          req.Color,
		CreatedAt:      time.Now(),
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		s.LogError(ctx, err, "Failed to save wallet", slog.String("wallet_id", wallet.WalletID))
		return nil, err
	}

	s.LogInfo(ctx, "Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("name", wallet.Name))
	return &wallet, nil
}

func (s *walletService) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find wallet", slog.String("wallet_id", walletID))
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallets")
		return nil, err
	}
	return wallets, nil
}

func (s *walletService) DeleteWallet(ctx context.Context, walletID string) error {
	// History entries referencing the wallet stay; they carry the
	// denormalized wallet name for rendering.
	if _, err := s.walletRepo.FindWalletByID(ctx, walletID); err != nil {
		return err
	}
	if err := s.walletRepo.DeleteWallet(ctx, walletID); err != nil {
		s.LogError(ctx, err, "Failed to delete wallet", slog.String("wallet_id", walletID))
		return err
	}
	s.LogInfo(ctx, "Wallet deleted", slog.String("wallet_id", walletID))
	return nil
}

func (s *walletService) TotalBalance(ctx context.Context) (domain.Money, error) {
	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		return 0, err
	}
	var total domain.Money
	for _, w := range wallets {
		total = total.Add(w.CurrentBalance)
	}
	return total, nil
}

// RecomputeBalance rebuilds the cached balance as the opening balance
// plus the signed sum of the wallet's ledger entries and overwrites it.
// This is the reconciliation backstop for a cache that drifted (e.g. a
// document edited out of band); normal operation never needs it because
// balances only move inside batches.
func (s *walletService) RecomputeBalance(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}
	balance := wallet.InitialBalance
	for _, txn := range txns {
		balance = balance.Add(txn.SignedValue())
	}

	batch := s.ledgerRepo.NewLedgerBatch()
	batch.SetWalletBalance(walletID, balance)
	if err := batch.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to reconcile wallet balance", slog.String("wallet_id", walletID))
		return nil, err
	}

	s.LogInfo(ctx, "Wallet balance reconciled",
		slog.String("wallet_id", walletID),
		slog.String("previous", wallet.CurrentBalance.String()),
		slog.String("reconciled", balance.String()))

	wallet.CurrentBalance = balance
	return wallet, nil
}

func (s *walletService) WatchWallets(ctx context.Context) (<-chan []domain.Wallet, error) {
	return s.walletRepo.WatchWallets(ctx)
}
