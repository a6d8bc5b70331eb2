package services

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/couplefin/couple_finance_app/internal/dto"
)

// BudgetSvcFacade aggregates real spending per category per statement
// month and reconciles it against stored limits.
type BudgetSvcFacade interface {
	// Overview returns one reconciled row per expense category for the
	// month. sourceID narrows to a single wallet or card; empty or
	// "all" aggregates every source. Wallet transactions are matched by
	// calendar month, card installments by projected statement month.
	Overview(ctx context.Context, month domain.Month, sourceID string) ([]domain.CategoryBudget, error)

	// SetLimit idempotently upserts the limit for (month, category) and
	// returns the immediately re-derived overview row for that category
	// (read-your-write, no second fetch of the budget document).
	SetLimit(ctx context.Context, req dto.SetBudgetLimitRequest) (*domain.CategoryBudget, error)
}
