package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
	"github.com/couplefin/couple_finance_app/internal/core/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
	"github.com/couplefin/couple_finance_app/internal/platform/storage/memory"
	"github.com/couplefin/couple_finance_app/internal/repositories/docstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerServiceTestSuite exercises the balance mutation engine against
// the in-memory document store, the same way the other backends see it.
type LedgerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repos    portsrepo.RepositoryProvider
	services *portssvc.ServiceContainer
	walletA  *domain.Wallet
	walletB  *domain.Wallet
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = docstore.NewRepositoryProvider(memory.New())
	s.services = services.NewServiceContainer(s.repos)

	var err error
	s.walletA, err = s.services.Wallet.CreateWallet(s.ctx, dto.CreateWalletRequest{
		Name:           "Conta Corrente",
		Type:           domain.Checking,
		InitialBalance: decimal.NewFromInt(1000),
	})
	s.Require().NoError(err)

	s.walletB, err = s.services.Wallet.CreateWallet(s.ctx, dto.CreateWalletRequest{
		Name: "Poupança",
		Type: domain.Savings,
	})
	s.Require().NoError(err)
}

func (s *LedgerServiceTestSuite) balance(walletID string) domain.Money {
	wallet, err := s.repos.WalletRepo.FindWalletByID(s.ctx, walletID)
	s.Require().NoError(err)
	return wallet.CurrentBalance
}

func (s *LedgerServiceTestSuite) TestCreateTransactionAdjustsBalance() {
	txn, err := s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Mercado da semana",
		Value:       decimal.NewFromFloat(150.50),
		Type:        domain.Saida,
		Category:    "Mercado",
		WalletID:    s.walletA.WalletID,
	})
	s.Require().NoError(err)
	s.Equal(domain.Money(15050), txn.Value)
	s.Equal(s.walletA.Name, txn.WalletName)
	s.Equal(domain.Money(100000-15050), s.balance(s.walletA.WalletID))

	_, err = s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Salário",
		Value:       decimal.NewFromInt(3000),
		Type:        domain.Entrada,
		Category:    "Salário",
		WalletID:    s.walletA.WalletID,
	})
	s.Require().NoError(err)
	s.Equal(domain.Money(100000-15050+300000), s.balance(s.walletA.WalletID))
}

func (s *LedgerServiceTestSuite) TestCreateTransactionRejectsUnknownIncomeCategory() {
	_, err := s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Depósito",
		Value:       decimal.NewFromInt(500),
		Type:        domain.Entrada,
		Category:    "Mercado",
		WalletID:    s.walletA.WalletID,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(domain.Money(100000), s.balance(s.walletA.WalletID))
}

func (s *LedgerServiceTestSuite) TestCreateTransactionRejectsNonPositiveValue() {
	_, err := s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Nada",
		Value:       decimal.Zero,
		Type:        domain.Saida,
		Category:    "Mercado",
		WalletID:    s.walletA.WalletID,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(domain.Money(100000), s.balance(s.walletA.WalletID))
}

func (s *LedgerServiceTestSuite) TestCreateTransactionUnknownWallet() {
	_, err := s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Fantasma",
		Value:       decimal.NewFromInt(10),
		Type:        domain.Saida,
		Category:    "Mercado",
		WalletID:    "missing",
	})
	s.ErrorIs(err, services.ErrWalletNotFound)
}

func (s *LedgerServiceTestSuite) TestDeleteTransactionReversesEffect() {
	txn, err := s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Cinema",
		Value:       decimal.NewFromInt(80),
		Type:        domain.Saida,
		Category:    "Lazer",
		WalletID:    s.walletA.WalletID,
	})
	s.Require().NoError(err)
	s.Equal(domain.Money(92000), s.balance(s.walletA.WalletID))

	s.Require().NoError(s.services.Ledger.DeleteTransaction(s.ctx, txn.TransactionID))
	s.Equal(domain.Money(100000), s.balance(s.walletA.WalletID))

	_, err = s.repos.TransactionRepo.FindTransactionByID(s.ctx, txn.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// The balance invariant: after any create/delete sequence the cached
// balance equals the opening balance plus the signed sum of the
// surviving entries.
func (s *LedgerServiceTestSuite) TestBalanceInvariantOverSequence() {
	var kept []*domain.Transaction
	mk := func(value int64, txnType domain.TransactionType) *domain.Transaction {
		txn, err := s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
			Description: "seq",
			Value:       decimal.NewFromInt(value),
			Type:        txnType,
			Category:    "Outros",
			WalletID:    s.walletA.WalletID,
		})
		s.Require().NoError(err)
		return txn
	}

	t1 := mk(100, domain.Saida)
	kept = append(kept, mk(250, domain.Entrada))
	t3 := mk(40, domain.Saida)
	kept = append(kept, mk(10, domain.Saida))

	s.Require().NoError(s.services.Ledger.DeleteTransaction(s.ctx, t1.TransactionID))
	s.Require().NoError(s.services.Ledger.DeleteTransaction(s.ctx, t3.TransactionID))

	expected := domain.Money(100000)
	for _, txn := range kept {
		expected = expected.Add(txn.SignedValue())
	}
	s.Equal(expected, s.balance(s.walletA.WalletID))

	// The reconciliation backstop must agree with the cached value.
	reconciled, err := s.services.Wallet.RecomputeBalance(s.ctx, s.walletA.WalletID)
	s.Require().NoError(err)
	s.Equal(expected, reconciled.CurrentBalance)
}

func (s *LedgerServiceTestSuite) TestTransferMovesValueAtomically() {
	legs, err := s.services.Ledger.Transfer(s.ctx, dto.TransferRequest{
		SourceID: s.walletA.WalletID,
		DestID:   s.walletB.WalletID,
		Value:    decimal.NewFromInt(400),
	})
	s.Require().NoError(err)
	s.Require().Len(legs, 2)

	s.Equal(domain.Money(60000), s.balance(s.walletA.WalletID))
	s.Equal(domain.Money(40000), s.balance(s.walletB.WalletID))

	s.Equal(domain.Saida, legs[0].Type)
	s.Equal(domain.Entrada, legs[1].Type)
	for _, leg := range legs {
		s.Equal(domain.CategoryTransfer, leg.Category)
	}
	s.True(legs[0].Date.Equal(legs[1].Date), "both legs share one timestamp")
}

func (s *LedgerServiceTestSuite) TestTransferSameWalletRejected() {
	_, err := s.services.Ledger.Transfer(s.ctx, dto.TransferRequest{
		SourceID: s.walletA.WalletID,
		DestID:   s.walletA.WalletID,
		Value:    decimal.NewFromInt(10),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestTransferUnknownDestLeavesNoPartialState() {
	_, err := s.services.Ledger.Transfer(s.ctx, dto.TransferRequest{
		SourceID: s.walletA.WalletID,
		DestID:   "missing",
		Value:    decimal.NewFromInt(10),
	})
	s.ErrorIs(err, services.ErrWalletNotFound)

	s.Equal(domain.Money(100000), s.balance(s.walletA.WalletID))
	txns, err := s.repos.TransactionRepo.ListTransactions(s.ctx)
	s.Require().NoError(err)
	s.Empty(txns)
}

// A batch whose balance increment targets a missing wallet must commit
// nothing, including the ledger entry staged alongside it.
func (s *LedgerServiceTestSuite) TestLedgerBatchAtomicityOnMissingWallet() {
	batch := s.repos.LedgerRepo.NewLedgerBatch()
	batch.SetTransaction(domain.Transaction{
		TransactionID: "orphan",
		Description:   "orphan",
		Value:         1000,
		Type:          domain.Saida,
		Category:      "Mercado",
		Date:          time.Now(),
		WalletID:      "missing",
	})
	batch.AdjustWalletBalance("missing", -1000)
	s.Error(batch.Commit(s.ctx))

	_, err := s.repos.TransactionRepo.FindTransactionByID(s.ctx, "orphan")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestPayCardBill() {
	card, err := s.services.Card.CreateCard(s.ctx, dto.CreateCardRequest{
		Name:       "Nubank",
		Limit:      decimal.NewFromInt(1000),
		ClosingDay: 10,
		DueDay:     20,
	})
	s.Require().NoError(err)

	purchases, err := s.services.Card.EnterPurchase(s.ctx, card.CardID, dto.CreatePurchaseRequest{
		Description:  "Fone",
		TotalValue:   decimal.NewFromInt(200),
		Installments: 1,
		Category:     "Eletrônicos",
	})
	s.Require().NoError(err)
	s.Require().Len(purchases, 1)

	txn, err := s.services.Ledger.PayCardBill(s.ctx, purchases[0].PurchaseID, s.walletA.WalletID)
	s.Require().NoError(err)

	s.Equal(domain.CategoryCardPayment, txn.Category)
	s.Equal(domain.PaymentMethodBill, txn.PaymentMethod)
	s.Equal(domain.Saida, txn.Type)
	s.Equal(domain.Money(80000), s.balance(s.walletA.WalletID))

	paid, err := s.repos.PurchaseRepo.FindPurchaseByID(s.ctx, purchases[0].PurchaseID)
	s.Require().NoError(err)
	s.Equal(domain.PurchasePaid, paid.Status)

	// Paying again must be rejected without touching the balance.
	_, err = s.services.Ledger.PayCardBill(s.ctx, purchases[0].PurchaseID, s.walletA.WalletID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(domain.Money(80000), s.balance(s.walletA.WalletID))
}

func (s *LedgerServiceTestSuite) TestRealizeFixedExpenseOnWallet() {
	expense, err := s.services.Fixed.CreateFixedExpense(s.ctx, dto.CreateFixedItemRequest{
		Description: "Aluguel",
		Value:       decimal.NewFromInt(1500),
	})
	s.Require().NoError(err)

	err = s.services.Ledger.RealizeFixedExpense(s.ctx, expense.ExpenseID, dto.RealizeFixedExpenseRequest{
		Method:   "wallet",
		SourceID: s.walletA.WalletID,
	})
	s.Require().NoError(err)

	s.Equal(domain.Money(100000-150000), s.balance(s.walletA.WalletID))

	txns, err := s.repos.TransactionRepo.ListTransactionsByWallet(s.ctx, s.walletA.WalletID)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal(domain.CategoryBills, txns[0].Category)
	s.Equal("Aluguel", txns[0].Description)
}

func (s *LedgerServiceTestSuite) TestRealizeFixedExpenseOnCard() {
	card, err := s.services.Card.CreateCard(s.ctx, dto.CreateCardRequest{
		Name:       "Inter",
		Limit:      decimal.NewFromInt(2000),
		ClosingDay: 5,
		DueDay:     15,
	})
	s.Require().NoError(err)

	expense, err := s.services.Fixed.CreateFixedExpense(s.ctx, dto.CreateFixedItemRequest{
		Description: "Internet",
		Value:       decimal.NewFromInt(120),
	})
	s.Require().NoError(err)

	override := decimal.NewFromInt(130)
	err = s.services.Ledger.RealizeFixedExpense(s.ctx, expense.ExpenseID, dto.RealizeFixedExpenseRequest{
		Method:   "card",
		SourceID: card.CardID,
		Value:    &override,
	})
	s.Require().NoError(err)

	purchases, err := s.repos.PurchaseRepo.ListPurchasesByCard(s.ctx, card.CardID)
	s.Require().NoError(err)
	s.Require().Len(purchases, 1)
	s.Equal(domain.Money(13000), purchases[0].TotalValue)
	s.Equal(domain.CategoryBills, purchases[0].Category)
	s.Equal(domain.PurchaseOpen, purchases[0].Status)

	// A card realization moves no wallet money until the bill is paid.
	s.Equal(domain.Money(100000), s.balance(s.walletA.WalletID))
}

func (s *LedgerServiceTestSuite) TestRealizeFixedIncome() {
	income, err := s.services.Fixed.CreateFixedIncome(s.ctx, dto.CreateFixedItemRequest{
		Description: "Salário",
		Value:       decimal.NewFromInt(5000),
	})
	s.Require().NoError(err)

	txn, err := s.services.Ledger.RealizeFixedIncome(s.ctx, income.IncomeID, dto.ReceiveFixedIncomeRequest{
		WalletID: s.walletB.WalletID,
	})
	s.Require().NoError(err)
	s.Equal(domain.Entrada, txn.Type)
	s.Equal(domain.CategoryFixedIncome, txn.Category)
	s.Equal(domain.Money(500000), s.balance(s.walletB.WalletID))
}

// Re-realizing is deliberately not deduped; both bookings must land.
func (s *LedgerServiceTestSuite) TestRealizeFixedExpenseTwiceBooksTwice() {
	expense, err := s.services.Fixed.CreateFixedExpense(s.ctx, dto.CreateFixedItemRequest{
		Description: "Condomínio",
		Value:       decimal.NewFromInt(100),
	})
	s.Require().NoError(err)

	req := dto.RealizeFixedExpenseRequest{Method: "wallet", SourceID: s.walletA.WalletID}
	s.Require().NoError(s.services.Ledger.RealizeFixedExpense(s.ctx, expense.ExpenseID, req))
	s.Require().NoError(s.services.Ledger.RealizeFixedExpense(s.ctx, expense.ExpenseID, req))

	s.Equal(domain.Money(80000), s.balance(s.walletA.WalletID))
	txns, err := s.repos.TransactionRepo.ListTransactionsByWallet(s.ctx, s.walletA.WalletID)
	s.Require().NoError(err)
	s.Len(txns, 2)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
