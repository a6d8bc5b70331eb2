package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
)

// sourceAll aggregates every wallet and card.
const sourceAll = "all"

// budgetService implements the BudgetSvcFacade interface.
//
// Aggregation fetches broad and narrows in-process: the store only
// guarantees single-field equality filtering, so month, category and
// source narrowing all happen here.
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	purchaseRepo portsrepo.CardPurchaseRepositoryFacade
	walletRepo   portsrepo.WalletRepositoryFacade
	cardRepo     portsrepo.CardRepositoryFacade
}

// NewBudgetService creates a new budget service.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	purchaseRepo portsrepo.CardPurchaseRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	cardRepo portsrepo.CardRepositoryFacade,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   budgetRepo,
		txnRepo:      txnRepo,
		purchaseRepo: purchaseRepo,
		walletRepo:   walletRepo,
		cardRepo:     cardRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) Overview(ctx context.Context, month domain.Month, sourceID string) ([]domain.CategoryBudget, error) {
	spent, err := s.aggregateSpending(ctx, month, sourceID)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.ListBudgetsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	limits := make(map[string]domain.Money, len(budgets))
	for _, b := range budgets {
		limits[b.Category] = b.Limit
	}

	// One row per known expense bucket, in the fixed display order.
	rows := make([]domain.CategoryBudget, 0, len(domain.ExpenseCategories))
	for _, category := range domain.ExpenseCategories {
		rows = append(rows, domain.ReconcileBudget(category, limits[category], spent[category]))
	}
	return rows, nil
}

func (s *budgetService) SetLimit(ctx context.Context, req dto.SetBudgetLimitRequest) (*domain.CategoryBudget, error) {
	month, err := domain.ParseMonth(req.Month)
	if err != nil {
		return nil, err
	}
	if !domain.IsExpenseCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, req.Category)
	}
	limit := domain.MoneyFromDecimal(req.Limit)
	if limit.IsNegative() {
		return nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrValidation)
	}

	budget := domain.Budget{
		BudgetID: domain.BudgetKey(month, req.Category),
		Month:    month,
		Category: req.Category,
		Limit:    limit,
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget limit", slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	// Read-your-write: re-derive the row from the limit just written
	// instead of re-fetching the budget document, so the response is
	// right even if the store is slow to surface the upsert.
	spent, err := s.aggregateSpending(ctx, month, sourceAll)
	if err != nil {
		return nil, err
	}
	row := domain.ReconcileBudget(req.Category, limit, spent[req.Category])

	s.LogInfo(ctx, "Budget limit set",
		slog.String("budget_id", budget.BudgetID),
		slog.String("limit", limit.String()))
	return &row, nil
}

// aggregateSpending buckets the month's real expenses per category.
//
// Wallet transactions count in their calendar month; card installments
// count in their projected statement month (falling back to their own
// calendar month when the card no longer exists). Card-payment and
// transfer entries are excluded: the former would double-count spending
// already attributed to installments, the latter is not spending at
// all. Unknown categories collapse into the fallback bucket.
func (s *budgetService) aggregateSpending(ctx context.Context, month domain.Month, sourceID string) (map[string]domain.Money, error) {
	walletFilter, cardFilter, err := s.resolveSource(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]domain.Money)
	bucket := func(category string) string {
		if domain.IsExpenseCategory(category) {
			return category
		}
		return domain.CategoryOther
	}

	if cardFilter == "" {
		txns, err := s.txnRepo.ListTransactionsByType(ctx, domain.Saida)
		if err != nil {
			return nil, err
		}
		for _, txn := range txns {
			if !month.Contains(txn.Date) {
				continue
			}
			if txn.Category == domain.CategoryCardPayment || txn.Category == domain.CategoryTransfer {
				continue
			}
			if walletFilter != "" && txn.WalletID != walletFilter {
				continue
			}
			spent[bucket(txn.Category)] = spent[bucket(txn.Category)].Add(txn.Value)
		}
	}

	if walletFilter == "" {
		purchases, err := s.purchaseRepo.ListPurchases(ctx)
		if err != nil {
			return nil, err
		}
		cards, err := s.cardRepo.ListCards(ctx)
		if err != nil {
			return nil, err
		}
		cycles := make(map[string]domain.Card, len(cards))
		for _, c := range cards {
			cycles[c.CardID] = c
		}
		for _, p := range purchases {
			if cardFilter != "" && p.CardID != cardFilter {
				continue
			}
			statement := domain.MonthOf(p.Date)
			if card, ok := cycles[p.CardID]; ok {
				statement = StatementMonth(p.Date, card.ClosingDay, card.DueDay)
			}
			if !statement.Equal(month) {
				continue
			}
			spent[bucket(p.Category)] = spent[bucket(p.Category)].Add(p.TotalValue)
		}
	}

	return spent, nil
}

// resolveSource classifies sourceID as a wallet or a card. A wallet
// filter drops every card installment (they are not that wallet's
// spending) and a card filter drops every wallet transaction. An id
// matching neither, e.g. a deleted card with surviving installments, is
// treated as a card filter so its history stays reachable.
func (s *budgetService) resolveSource(ctx context.Context, sourceID string) (walletFilter, cardFilter string, err error) {
	if sourceID == "" || sourceID == sourceAll {
		return "", "", nil
	}

	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		return "", "", err
	}
	for _, w := range wallets {
		if w.WalletID == sourceID {
			return sourceID, "", nil
		}
	}
	return "", sourceID, nil
}
