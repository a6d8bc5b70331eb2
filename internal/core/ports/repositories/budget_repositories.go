package repositories

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
)

// BudgetReader defines read operations for budget limits.
type BudgetReader interface {
	// ListBudgetsByMonth retrieves the stored limits for one month.
	ListBudgetsByMonth(ctx context.Context, month domain.Month) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget limits.
type BudgetWriter interface {
	// SaveBudget upserts a limit keyed by (month, category). The id is
	// the natural key, so repeated writes replace the prior value.
	SaveBudget(ctx context.Context, budget domain.Budget) error
}

// BudgetRepositoryFacade combines the budget interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
