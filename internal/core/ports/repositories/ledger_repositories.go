package repositories

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
)

// LedgerBatch stages the paired effects of one financial event and
// commits them atomically: either every staged write lands or none do.
// It is the ONLY path that moves wallet balances, which keeps the
// invariant that a balance equals the signed sum of its transactions.
type LedgerBatch interface {
	// SetTransaction stages a new ledger entry.
	SetTransaction(txn domain.Transaction)

	// DeleteTransaction stages removal of a ledger entry.
	DeleteTransaction(transactionID string)

	// AdjustWalletBalance stages an atomic increment of a wallet's
	// cached balance. Positive delta credits, negative debits.
	AdjustWalletBalance(walletID string, delta domain.Money)

	// SetWalletBalance stages an absolute overwrite of the cached
	// balance. Reserved for the reconciliation backstop.
	SetWalletBalance(walletID string, balance domain.Money)

	// SetCardPurchase stages a new purchase installment.
	SetCardPurchase(purchase domain.CardPurchase)

	// MarkPurchasePaid stages the open -> paid status transition.
	MarkPurchasePaid(purchaseID string)

	// Commit applies every staged effect in one atomic write.
	Commit(ctx context.Context) error
}

// LedgerRepository hands out atomic ledger batches.
type LedgerRepository interface {
	NewLedgerBatch() LedgerBatch
}
