package docstore

import (
	"context"
	"fmt"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// FixedItemRepository persists the recurring templates: expenses in
// livingExpenses, incomes in fixedEntries.
type FixedItemRepository struct {
	store storage.DocumentStore
}

// NewFixedItemRepository creates a new FixedItemRepository.
func NewFixedItemRepository(store storage.DocumentStore) *FixedItemRepository {
	return &FixedItemRepository{store: store}
}

var _ portsrepo.FixedItemRepositoryFacade = (*FixedItemRepository)(nil)

func encodeFixedItem(description string, value domain.Money) map[string]any {
	return map[string]any{
		"description": description,
		"value":       int64(value),
	}
}

func (r *FixedItemRepository) FindFixedExpenseByID(ctx context.Context, expenseID string) (*domain.FixedExpense, error) {
	doc, err := r.store.Get(ctx, storage.CollectionFixedExpenses, expenseID)
	if err != nil {
		return nil, err
	}
	return &domain.FixedExpense{
		ExpenseID:   doc.ID,
		Description: readString(doc.Data, "description"),
		Value:       readMoney(doc.Data, "value"),
	}, nil
}

func (r *FixedItemRepository) ListFixedExpenses(ctx context.Context) ([]domain.FixedExpense, error) {
	docs, err := r.store.Query(ctx, storage.CollectionFixedExpenses, nil)
	if err != nil {
		return nil, fmt.Errorf("listing fixed expenses: %w", err)
	}
	expenses := make([]domain.FixedExpense, len(docs))
	for i, doc := range docs {
		expenses[i] = domain.FixedExpense{
			ExpenseID:   doc.ID,
			Description: readString(doc.Data, "description"),
			Value:       readMoney(doc.Data, "value"),
		}
	}
	return expenses, nil
}

func (r *FixedItemRepository) SaveFixedExpense(ctx context.Context, expense domain.FixedExpense) error {
	batch := r.store.NewBatch()
	batch.Set(storage.CollectionFixedExpenses, expense.ExpenseID, encodeFixedItem(expense.Description, expense.Value))
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("saving fixed expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *FixedItemRepository) DeleteFixedExpense(ctx context.Context, expenseID string) error {
	batch := r.store.NewBatch()
	batch.Delete(storage.CollectionFixedExpenses, expenseID)
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("deleting fixed expense %s: %w", expenseID, err)
	}
	return nil
}

func (r *FixedItemRepository) FindFixedIncomeByID(ctx context.Context, incomeID string) (*domain.FixedIncome, error) {
	doc, err := r.store.Get(ctx, storage.CollectionFixedIncomes, incomeID)
	if err != nil {
		return nil, err
	}
	return &domain.FixedIncome{
		IncomeID:    doc.ID,
		Description: readString(doc.Data, "description"),
		Value:       readMoney(doc.Data, "value"),
	}, nil
}

func (r *FixedItemRepository) ListFixedIncomes(ctx context.Context) ([]domain.FixedIncome, error) {
	docs, err := r.store.Query(ctx, storage.CollectionFixedIncomes, nil)
	if err != nil {
		return nil, fmt.Errorf("listing fixed incomes: %w", err)
	}
	incomes := make([]domain.FixedIncome, len(docs))
	for i, doc := range docs {
		incomes[i] = domain.FixedIncome{
			IncomeID:    doc.ID,
			Description: readString(doc.Data, "description"),
			Value:       readMoney(doc.Data, "value"),
		}
	}
	return incomes, nil
}

func (r *FixedItemRepository) SaveFixedIncome(ctx context.Context, income domain.FixedIncome) error {
	batch := r.store.NewBatch()
	batch.Set(storage.CollectionFixedIncomes, income.IncomeID, encodeFixedItem(income.Description, income.Value))
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("saving fixed income %s: %w", income.IncomeID, err)
	}
	return nil
}

func (r *FixedItemRepository) DeleteFixedIncome(ctx context.Context, incomeID string) error {
	batch := r.store.NewBatch()
	batch.Delete(storage.CollectionFixedIncomes, incomeID)
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("deleting fixed income %s: %w", incomeID, err)
	}
	return nil
}
