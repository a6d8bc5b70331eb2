package repositories

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
)

// FixedItemReader defines read operations for the recurring templates.
type FixedItemReader interface {
	// FindFixedExpenseByID retrieves one expense template.
	FindFixedExpenseByID(ctx context.Context, expenseID string) (*domain.FixedExpense, error)

	// ListFixedExpenses retrieves every expense template.
	ListFixedExpenses(ctx context.Context) ([]domain.FixedExpense, error)

	// FindFixedIncomeByID retrieves one income template.
	FindFixedIncomeByID(ctx context.Context, incomeID string) (*domain.FixedIncome, error)

	// ListFixedIncomes retrieves every income template.
	ListFixedIncomes(ctx context.Context) ([]domain.FixedIncome, error)
}

// FixedItemWriter defines write operations for the recurring templates.
type FixedItemWriter interface {
	SaveFixedExpense(ctx context.Context, expense domain.FixedExpense) error
	DeleteFixedExpense(ctx context.Context, expenseID string) error
	SaveFixedIncome(ctx context.Context, income domain.FixedIncome) error
	DeleteFixedIncome(ctx context.Context, incomeID string) error
}

// FixedItemRepositoryFacade combines the fixed-item interfaces.
type FixedItemRepositoryFacade interface {
	FixedItemReader
	FixedItemWriter
}
