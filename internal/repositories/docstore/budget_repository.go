package docstore

import (
	"context"
	"fmt"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// BudgetRepository persists monthly limits in the budgets collection.
// The document id is the natural key "{YYYY-MM}_{category}", which is
// what makes SaveBudget an idempotent upsert.
type BudgetRepository struct {
	store storage.DocumentStore
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(store storage.DocumentStore) *BudgetRepository {
	return &BudgetRepository{store: store}
}

var _ portsrepo.BudgetRepositoryFacade = (*BudgetRepository)(nil)

func encodeBudget(b domain.Budget) map[string]any {
	return map[string]any{
		"month":    b.Month.String(),
		"category": b.Category,
		"limit":    int64(b.Limit),
	}
}

func decodeBudget(doc storage.Document) domain.Budget {
	month, _ := domain.ParseMonth(readString(doc.Data, "month"))
	return domain.Budget{
		BudgetID: doc.ID,
		Month:    month,
		Category: readString(doc.Data, "category"),
		Limit:    readMoney(doc.Data, "limit"),
	}
}

func (r *BudgetRepository) ListBudgetsByMonth(ctx context.Context, month domain.Month) ([]domain.Budget, error) {
	docs, err := r.store.Query(ctx, storage.CollectionBudgets, &storage.Predicate{Field: "month", Value: month.String()})
	if err != nil {
		return nil, fmt.Errorf("listing budgets for %s: %w", month, err)
	}
	budgets := make([]domain.Budget, len(docs))
	for i, doc := range docs {
		budgets[i] = decodeBudget(doc)
	}
	return budgets, nil
}

func (r *BudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	batch := r.store.NewBatch()
	batch.Set(storage.CollectionBudgets, budget.BudgetID, encodeBudget(budget))
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("saving budget %s: %w", budget.BudgetID, err)
	}
	return nil
}
