package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
	"github.com/google/uuid"
)

var (
	ErrSameWallet          = errors.New("source and destination wallet must differ")
	ErrPurchaseAlreadyPaid = errors.New("purchase installment is already paid")
	ErrWalletNotFound      = errors.New("wallet not found")
)

// ledgerService is the balance mutation engine. Every financial event
// becomes exactly one atomic batch pairing the ledger entries with
// their balance effects, which is what keeps a wallet's cached balance
// equal to the signed sum of its transactions at every quiescent point.
type ledgerService struct {
	BaseService
	walletRepo   portsrepo.WalletRepositoryFacade
	purchaseRepo portsrepo.CardPurchaseRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	fixedRepo    portsrepo.FixedItemRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	walletRepo portsrepo.WalletRepositoryFacade,
	purchaseRepo portsrepo.CardPurchaseRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	fixedRepo portsrepo.FixedItemRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepository,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		walletRepo:   walletRepo,
		purchaseRepo: purchaseRepo,
		txnRepo:      txnRepo,
		fixedRepo:    fixedRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	value := domain.MoneyFromDecimal(req.Value)
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrValueNotPositive)
	}
	// Saida categories are free-form (unknown ones bucket to Outros in
	// aggregation); entrada categories come from a fixed selectable set.
	if req.Type == domain.Entrada && !domain.IsIncomeCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown income category %q", apperrors.ErrValidation, req.Category)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, req.WalletID)
		}
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   req.Description,
		Value:         value,
		Type:          req.Type,
		Category:      req.Category,
		Date:          date,
		WalletID:      wallet.WalletID,
		WalletName:    wallet.Name,
	}

	batch := s.ledgerRepo.NewLedgerBatch()
	batch.SetTransaction(txn)
	batch.AdjustWalletBalance(wallet.WalletID, txn.SignedValue())
	if err := batch.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction batch", slog.String("wallet_id", wallet.WalletID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("wallet_id", wallet.WalletID),
		slog.String("value", txn.SignedValue().String()))
	return &txn, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	// Removing the entry reverses its balance effect in the same batch,
	// so the balance stays consistent with the surviving history.
	batch := s.ledgerRepo.NewLedgerBatch()
	batch.DeleteTransaction(transactionID)
	batch.AdjustWalletBalance(txn.WalletID, txn.SignedValue().Neg())
	if err := batch.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction removal", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("wallet_id", txn.WalletID))
	return nil
}

func (s *ledgerService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
	return txns, nil
}

func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest) ([]domain.Transaction, error) {
	if req.SourceID == req.DestID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameWallet)
	}
	value := domain.MoneyFromDecimal(req.Value)
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrValueNotPositive)
	}

	source, err := s.walletRepo.FindWalletByID(ctx, req.SourceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, req.SourceID)
		}
		return nil, err
	}
	dest, err := s.walletRepo.FindWalletByID(ctx, req.DestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, req.DestID)
		}
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	// Two legs, identically dated, both tagged with the transfer
	// category so aggregation skips them: moving money between the
	// couple's own wallets is not spending.
	out := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   fmt.Sprintf("Transferência para %s", dest.Name),
		Value:         value,
		Type:          domain.Saida,
		Category:      domain.CategoryTransfer,
		Date:          date,
		WalletID:      source.WalletID,
		WalletName:    source.Name,
	}
	in := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   fmt.Sprintf("Transferência de %s", source.Name),
		Value:         value,
		Type:          domain.Entrada,
		Category:      domain.CategoryTransfer,
		Date:          date,
		WalletID:      dest.WalletID,
		WalletName:    dest.Name,
	}

	batch := s.ledgerRepo.NewLedgerBatch()
	batch.SetTransaction(out)
	batch.SetTransaction(in)
	batch.AdjustWalletBalance(source.WalletID, value.Neg())
	batch.AdjustWalletBalance(dest.WalletID, value)
	if err := batch.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to commit transfer batch",
			slog.String("source_id", source.WalletID),
			slog.String("dest_id", dest.WalletID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("source_id", source.WalletID),
		slog.String("dest_id", dest.WalletID),
		slog.String("value", value.String()))
	return []domain.Transaction{out, in}, nil
}

func (s *ledgerService) PayCardBill(ctx context.Context, purchaseID, walletID string) (*domain.Transaction, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !purchase.IsOpen() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPurchaseAlreadyPaid)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, walletID)
		}
		return nil, err
	}

	// The wallet leg is tagged as a card payment, not as the purchase's
	// own category: the spending was already attributed to the card
	// installment and must not be counted twice.
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   fmt.Sprintf("Pagamento Cartão: %s", purchase.Description),
		Value:         purchase.TotalValue,
		Type:          domain.Saida,
		Category:      domain.CategoryCardPayment,
		Date:          time.Now(),
		WalletID:      wallet.WalletID,
		WalletName:    wallet.Name,
		PaymentMethod: domain.PaymentMethodBill,
	}

	batch := s.ledgerRepo.NewLedgerBatch()
	batch.MarkPurchasePaid(purchaseID)
	batch.AdjustWalletBalance(wallet.WalletID, purchase.TotalValue.Neg())
	batch.SetTransaction(txn)
	if err := batch.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to commit bill payment batch",
			slog.String("purchase_id", purchaseID),
			slog.String("wallet_id", walletID))
		return nil, err
	}

	s.LogInfo(ctx, "Card bill installment paid",
		slog.String("purchase_id", purchaseID),
		slog.String("wallet_id", walletID),
		slog.String("value", purchase.TotalValue.String()))
	return &txn, nil
}

// RealizeFixedExpense converts a template into a concrete event for the
// current period. There is no dedup: realizing the same template twice
// in a month books it twice, and the caller decides if that is wanted
// (a bill genuinely paid twice should appear twice).
func (s *ledgerService) RealizeFixedExpense(ctx context.Context, expenseID string, req dto.RealizeFixedExpenseRequest) error {
	expense, err := s.fixedRepo.FindFixedExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}

	value := expense.Value
	if req.Value != nil {
		value = domain.MoneyFromDecimal(*req.Value)
	}
	if !value.IsPositive() {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrValueNotPositive)
	}

	switch req.Method {
	case "wallet":
		wallet, err := s.walletRepo.FindWalletByID(ctx, req.SourceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrWalletNotFound, req.SourceID)
			}
			return err
		}
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			Description:   expense.Description,
			Value:         value,
			Type:          domain.Saida,
			Category:      domain.CategoryBills,
			Date:          time.Now(),
			WalletID:      wallet.WalletID,
			WalletName:    wallet.Name,
		}
		batch := s.ledgerRepo.NewLedgerBatch()
		batch.SetTransaction(txn)
		batch.AdjustWalletBalance(wallet.WalletID, value.Neg())
		if err := batch.Commit(ctx); err != nil {
			s.LogError(ctx, err, "Failed to realize fixed expense", slog.String("expense_id", expenseID))
			return err
		}
	case "card":
		// A fixed expense pushed onto a card is one open installment
		// billing into the card's projected cycle like any purchase.
		purchases := SplitPurchase(req.SourceID, expense.Description, domain.CategoryBills, value, 1, time.Now())
		batch := s.ledgerRepo.NewLedgerBatch()
		batch.SetCardPurchase(purchases[0])
		if err := batch.Commit(ctx); err != nil {
			s.LogError(ctx, err, "Failed to realize fixed expense on card", slog.String("expense_id", expenseID))
			return err
		}
	default:
		return fmt.Errorf("%w: unknown method %q", apperrors.ErrValidation, req.Method)
	}

	s.LogInfo(ctx, "Fixed expense realized",
		slog.String("expense_id", expenseID),
		slog.String("method", req.Method),
		slog.String("value", value.String()))
	return nil
}

func (s *ledgerService) RealizeFixedIncome(ctx context.Context, incomeID string, req dto.ReceiveFixedIncomeRequest) (*domain.Transaction, error) {
	income, err := s.fixedRepo.FindFixedIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}

	value := income.Value
	if req.Value != nil {
		value = domain.MoneyFromDecimal(*req.Value)
	}
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrValueNotPositive)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, req.WalletID)
		}
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   income.Description,
		Value:         value,
		Type:          domain.Entrada,
		Category:      domain.CategoryFixedIncome,
		Date:          time.Now(),
		WalletID:      wallet.WalletID,
		WalletName:    wallet.Name,
	}

	batch := s.ledgerRepo.NewLedgerBatch()
	batch.SetTransaction(txn)
	batch.AdjustWalletBalance(wallet.WalletID, value)
	if err := batch.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to realize fixed income", slog.String("income_id", incomeID))
		return nil, err
	}

	s.LogInfo(ctx, "Fixed income received",
		slog.String("income_id", incomeID),
		slog.String("wallet_id", wallet.WalletID),
		slog.String("value", value.String()))
	return &txn, nil
}
