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

type BudgetServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repos    portsrepo.RepositoryProvider
	services *portssvc.ServiceContainer
	wallet   *domain.Wallet
	month    domain.Month
}

func (s *BudgetServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = docstore.NewRepositoryProvider(memory.New())
	s.services = services.NewServiceContainer(s.repos)
	s.month = domain.NewMonth(2024, time.May)

	var err error
	s.wallet, err = s.services.Wallet.CreateWallet(s.ctx, dto.CreateWalletRequest{
		Name:           "Conta Corrente",
		Type:           domain.Checking,
		InitialBalance: decimal.NewFromInt(10000),
	})
	s.Require().NoError(err)
}

func (s *BudgetServiceTestSuite) spend(value int64, category string, date time.Time) {
	_, err := s.services.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: category,
		Value:       decimal.NewFromInt(value),
		Type:        domain.Saida,
		Category:    category,
		Date:        &date,
		WalletID:    s.wallet.WalletID,
	})
	s.Require().NoError(err)
}

func (s *BudgetServiceTestSuite) row(rows []domain.CategoryBudget, category string) domain.CategoryBudget {
	for _, r := range rows {
		if r.Category == category {
			return r
		}
	}
	s.FailNowf("missing category row", "category %s not in overview", category)
	return domain.CategoryBudget{}
}

func (s *BudgetServiceTestSuite) TestOverviewBucketsByCalendarMonth() {
	inMonth := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	otherMonth := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	s.spend(200, "Mercado", inMonth)
	s.spend(50, "Mercado", inMonth)
	s.spend(999, "Mercado", otherMonth)
	s.spend(80, "Lazer", inMonth)

	rows, err := s.services.Budget.Overview(s.ctx, s.month, "")
	s.Require().NoError(err)

	s.Equal(domain.Money(25000), s.row(rows, "Mercado").Spent)
	s.Equal(domain.Money(8000), s.row(rows, "Lazer").Spent)
}

func (s *BudgetServiceTestSuite) TestOverviewExcludesCardPaymentsAndTransfers() {
	date := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s.spend(100, "Mercado", date)

	// A bill payment leg must not count as category spending.
	card, err := s.services.Card.CreateCard(s.ctx, dto.CreateCardRequest{
		Name: "Nubank", Limit: decimal.NewFromInt(1000), ClosingDay: 10, DueDay: 20,
	})
	s.Require().NoError(err)
	purchaseDate := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	purchases, err := s.services.Card.EnterPurchase(s.ctx, card.CardID, dto.CreatePurchaseRequest{
		Description: "Fone", TotalValue: decimal.NewFromInt(300), Installments: 1,
		Category: "Eletrônicos", Date: &purchaseDate,
	})
	s.Require().NoError(err)
	_, err = s.services.Ledger.PayCardBill(s.ctx, purchases[0].PurchaseID, s.wallet.WalletID)
	s.Require().NoError(err)

	// Neither transfer leg is spending.
	other, err := s.services.Wallet.CreateWallet(s.ctx, dto.CreateWalletRequest{
		Name: "Poupança", Type: domain.Savings,
	})
	s.Require().NoError(err)
	transferDate := date
	_, err = s.services.Ledger.Transfer(s.ctx, dto.TransferRequest{
		SourceID: s.wallet.WalletID, DestID: other.WalletID,
		Value: decimal.NewFromInt(500), Date: &transferDate,
	})
	s.Require().NoError(err)

	rows, err := s.services.Budget.Overview(s.ctx, domain.MonthOf(time.Now()), "")
	s.Require().NoError(err)
	s.Zero(s.row(rows, domain.CategoryCardPayment).Spent,
		"payment legs are excluded even from their own bucket")

	rows, err = s.services.Budget.Overview(s.ctx, s.month, "")
	s.Require().NoError(err)
	var total domain.Money
	for _, r := range rows {
		total = total.Add(r.Spent)
	}
	s.Equal(domain.Money(10000), total, "only the Mercado entry counts in May")
}

func (s *BudgetServiceTestSuite) TestOverviewUnknownCategoryFallsBackToOutros() {
	date := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s.spend(70, "Categoria Antiga", date)

	rows, err := s.services.Budget.Overview(s.ctx, s.month, "")
	s.Require().NoError(err)
	s.Equal(domain.Money(7000), s.row(rows, domain.CategoryOther).Spent)
}

func (s *BudgetServiceTestSuite) TestOverviewCardInstallmentsUseStatementMonth() {
	card, err := s.services.Card.CreateCard(s.ctx, dto.CreateCardRequest{
		Name: "Inter", Limit: decimal.NewFromInt(5000), ClosingDay: 25, DueDay: 10,
	})
	s.Require().NoError(err)

	// Day 20 < closing 25, due 10 < closing 25: bills in M+1 = June.
	purchaseDate := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	_, err = s.services.Card.EnterPurchase(s.ctx, card.CardID, dto.CreatePurchaseRequest{
		Description: "Tênis", TotalValue: decimal.NewFromInt(400), Installments: 1,
		Category: "Lazer", Date: &purchaseDate,
	})
	s.Require().NoError(err)

	may, err := s.services.Budget.Overview(s.ctx, s.month, "")
	s.Require().NoError(err)
	s.Zero(s.row(may, "Lazer").Spent)

	june, err := s.services.Budget.Overview(s.ctx, domain.NewMonth(2024, time.June), "")
	s.Require().NoError(err)
	s.Equal(domain.Money(40000), s.row(june, "Lazer").Spent)
}

func (s *BudgetServiceTestSuite) TestOverviewDeletedCardFallsBackToPurchaseMonth() {
	card, err := s.services.Card.CreateCard(s.ctx, dto.CreateCardRequest{
		Name: "Extinto", Limit: decimal.NewFromInt(5000), ClosingDay: 25, DueDay: 10,
	})
	s.Require().NoError(err)

	purchaseDate := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	_, err = s.services.Card.EnterPurchase(s.ctx, card.CardID, dto.CreatePurchaseRequest{
		Description: "Livros", TotalValue: decimal.NewFromInt(90), Installments: 1,
		Category: "Lazer", Date: &purchaseDate,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.services.Card.DeleteCard(s.ctx, card.CardID))

	// Without the card's cycle the installment counts in its own month.
	may, err := s.services.Budget.Overview(s.ctx, s.month, "")
	s.Require().NoError(err)
	s.Equal(domain.Money(9000), s.row(may, "Lazer").Spent)
}

func (s *BudgetServiceTestSuite) TestOverviewSourceFilters() {
	date := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s.spend(100, "Mercado", date)

	card, err := s.services.Card.CreateCard(s.ctx, dto.CreateCardRequest{
		Name: "Nubank", Limit: decimal.NewFromInt(5000), ClosingDay: 10, DueDay: 20,
	})
	s.Require().NoError(err)
	// Day 2 < closing 10, due 20 > closing: bills in May itself.
	purchaseDate := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	_, err = s.services.Card.EnterPurchase(s.ctx, card.CardID, dto.CreatePurchaseRequest{
		Description: "Jogo", TotalValue: decimal.NewFromInt(60), Installments: 1,
		Category: "Lazer", Date: &purchaseDate,
	})
	s.Require().NoError(err)

	// Wallet filter: card installments disappear entirely.
	rows, err := s.services.Budget.Overview(s.ctx, s.month, s.wallet.WalletID)
	s.Require().NoError(err)
	s.Equal(domain.Money(10000), s.row(rows, "Mercado").Spent)
	s.Zero(s.row(rows, "Lazer").Spent)

	// Card filter: wallet transactions disappear entirely.
	rows, err = s.services.Budget.Overview(s.ctx, s.month, card.CardID)
	s.Require().NoError(err)
	s.Zero(s.row(rows, "Mercado").Spent)
	s.Equal(domain.Money(6000), s.row(rows, "Lazer").Spent)

	// "all" aggregates both.
	rows, err = s.services.Budget.Overview(s.ctx, s.month, "all")
	s.Require().NoError(err)
	s.Equal(domain.Money(10000), s.row(rows, "Mercado").Spent)
	s.Equal(domain.Money(6000), s.row(rows, "Lazer").Spent)
}

func (s *BudgetServiceTestSuite) TestSetLimitUpsertIsIdempotent() {
	_, err := s.services.Budget.SetLimit(s.ctx, dto.SetBudgetLimitRequest{
		Month: "2024-05", Category: "Lazer", Limit: decimal.NewFromInt(300),
	})
	s.Require().NoError(err)

	row, err := s.services.Budget.SetLimit(s.ctx, dto.SetBudgetLimitRequest{
		Month: "2024-05", Category: "Lazer", Limit: decimal.NewFromInt(500),
	})
	s.Require().NoError(err)
	s.Equal(domain.Money(50000), row.Limit)

	budgets, err := s.repos.BudgetRepo.ListBudgetsByMonth(s.ctx, s.month)
	s.Require().NoError(err)
	s.Require().Len(budgets, 1, "exactly one row per (month, category) key")
	s.Equal(domain.Money(50000), budgets[0].Limit)
	s.Equal("2024-05_Lazer", budgets[0].BudgetID)
}

func (s *BudgetServiceTestSuite) TestSetLimitReturnsReconciledRow() {
	date := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s.spend(80, "Lazer", date)

	row, err := s.services.Budget.SetLimit(s.ctx, dto.SetBudgetLimitRequest{
		Month: "2024-05", Category: "Lazer", Limit: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)
	s.Equal(domain.Money(8000), row.Spent)
	s.Equal(domain.Money(2000), row.Remaining)
	s.Equal(domain.BudgetWarning, row.Status)
}

func (s *BudgetServiceTestSuite) TestSetLimitRejectsUnknownCategory() {
	_, err := s.services.Budget.SetLimit(s.ctx, dto.SetBudgetLimitRequest{
		Month: "2024-05", Category: "Inexistente", Limit: decimal.NewFromInt(100),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

// End-to-end: card with closingDay=10, dueDay=20, limit=1000; a TV for
// 300 in 3 installments bought 2024-03-15 bills in April through June.
func (s *BudgetServiceTestSuite) TestTelevisionPurchaseEndToEnd() {
	card, err := s.services.Card.CreateCard(s.ctx, dto.CreateCardRequest{
		Name: "Nubank", Limit: decimal.NewFromInt(1000), ClosingDay: 10, DueDay: 20,
	})
	s.Require().NoError(err)

	purchaseDate := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	purchases, err := s.services.Card.EnterPurchase(s.ctx, card.CardID, dto.CreatePurchaseRequest{
		Description: "TV", TotalValue: decimal.NewFromInt(300), Installments: 3,
		Category: "Eletrônicos", Date: &purchaseDate,
	})
	s.Require().NoError(err)
	s.Require().Len(purchases, 3)

	for i, p := range purchases {
		s.Equal(domain.Money(10000), p.TotalValue, "installment %d", i+1)
		s.True(p.Date.Equal(purchaseDate.AddDate(0, i, 0)))
	}

	// Day 15 >= closing 10 shifts one month; due 20 >= closing adds nothing.
	for i, want := range []string{"2024-04", "2024-05", "2024-06"} {
		got := services.StatementMonth(purchases[i].Date, card.ClosingDay, card.DueDay)
		s.Equal(want, got.String(), "installment %d", i+1)

		rows, err := s.services.Budget.Overview(s.ctx, got, "")
		s.Require().NoError(err)
		s.Equal(domain.Money(10000), s.row(rows, "Eletrônicos").Spent)
	}

	metrics, err := s.services.Card.CardMetrics(s.ctx, card.CardID)
	s.Require().NoError(err)
	s.Equal(domain.Money(30000), metrics.Used)
	s.Equal(domain.Money(70000), metrics.Available)
	s.InDelta(30.0, metrics.PercentageUsed, 0.001)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
