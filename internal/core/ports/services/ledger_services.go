package services

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/couplefin/couple_finance_app/internal/dto"
)

// LedgerSvcFacade is the balance mutation engine: every operation that
// moves a wallet balance goes through here as one atomic batch.
type LedgerSvcFacade interface {
	// CreateTransaction records a ledger entry and adjusts the wallet
	// balance by its signed value in the same batch.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a ledger entry and reverses its balance
	// effect in the same batch.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// ListTransactions returns the full ledger history, newest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// Transfer moves value between two wallets: two balance adjustments
	// plus two identically dated ledger legs, one batch. Same source and
	// destination is rejected before any write.
	Transfer(ctx context.Context, req dto.TransferRequest) ([]domain.Transaction, error)

	// PayCardBill settles an open installment from a wallet: purchase
	// marked paid, wallet debited, history entry written, one batch.
	PayCardBill(ctx context.Context, purchaseID, walletID string) (*domain.Transaction, error)

	// RealizeFixedExpense converts an expense template into a concrete
	// event for the current period: a wallet transaction plus debit, or
	// a single open card installment. Re-realization is not deduped;
	// running it twice in one month double-books on purpose.
	RealizeFixedExpense(ctx context.Context, expenseID string, req dto.RealizeFixedExpenseRequest) error

	// RealizeFixedIncome converts an income template into an entrada
	// plus wallet credit, one batch.
	RealizeFixedIncome(ctx context.Context, incomeID string, req dto.ReceiveFixedIncomeRequest) (*domain.Transaction, error)
}
