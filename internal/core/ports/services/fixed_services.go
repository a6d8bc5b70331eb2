package services

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/couplefin/couple_finance_app/internal/dto"
)

// FixedSvcFacade manages the recurring income/expense templates and the
// dashboard forecast derived from them.
type FixedSvcFacade interface {
	CreateFixedExpense(ctx context.Context, req dto.CreateFixedItemRequest) (*domain.FixedExpense, error)
	ListFixedExpenses(ctx context.Context) ([]domain.FixedExpense, error)
	DeleteFixedExpense(ctx context.Context, expenseID string) error

	CreateFixedIncome(ctx context.Context, req dto.CreateFixedItemRequest) (*domain.FixedIncome, error)
	ListFixedIncomes(ctx context.Context) ([]domain.FixedIncome, error)
	DeleteFixedIncome(ctx context.Context, incomeID string) error

	// Forecast sums the templates: expected incomes, expected expenses
	// and the net outlook for a typical month.
	Forecast(ctx context.Context) (*domain.Forecast, error)
}
