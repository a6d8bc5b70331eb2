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
	"github.com/google/uuid"
)

// fixedService implements the FixedSvcFacade interface
type fixedService struct {
	BaseService
	fixedRepo portsrepo.FixedItemRepositoryFacade
}

// NewFixedService creates a new fixed-items service.
func NewFixedService(fixedRepo portsrepo.FixedItemRepositoryFacade) portssvc.FixedSvcFacade {
	return &fixedService{fixedRepo: fixedRepo}
}

var _ portssvc.FixedSvcFacade = (*fixedService)(nil)

func (s *fixedService) CreateFixedExpense(ctx context.Context, req dto.CreateFixedItemRequest) (*domain.FixedExpense, error) {
	value := domain.MoneyFromDecimal(req.Value)
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrValueNotPositive)
	}

	expense := domain.FixedExpense{
		ExpenseID:   uuid.NewString(),
		Description: req.Description,
		Value:       value,
	}
	if err := s.fixedRepo.SaveFixedExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save fixed expense", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Fixed expense created", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

func (s *fixedService) ListFixedExpenses(ctx context.Context) ([]domain.FixedExpense, error) {
	return s.fixedRepo.ListFixedExpenses(ctx)
}

func (s *fixedService) DeleteFixedExpense(ctx context.Context, expenseID string) error {
	if _, err := s.fixedRepo.FindFixedExpenseByID(ctx, expenseID); err != nil {
		return err
	}
	if err := s.fixedRepo.DeleteFixedExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete fixed expense", slog.String("expense_id", expenseID))
		return err
	}
	s.LogInfo(ctx, "Fixed expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *fixedService) CreateFixedIncome(ctx context.Context, req dto.CreateFixedItemRequest) (*domain.FixedIncome, error) {
	value := domain.MoneyFromDecimal(req.Value)
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrValueNotPositive)
	}

	income := domain.FixedIncome{
		IncomeID:    uuid.NewString(),
		Description: req.Description,
		Value:       value,
	}
	if err := s.fixedRepo.SaveFixedIncome(ctx, income); err != nil {
		s.LogError(ctx, err, "Failed to save fixed income", slog.String("income_id", income.IncomeID))
		return nil, err
	}

	s.LogInfo(ctx, "Fixed income created", slog.String("income_id", income.IncomeID))
	return &income, nil
}

func (s *fixedService) ListFixedIncomes(ctx context.Context) ([]domain.FixedIncome, error) {
	return s.fixedRepo.ListFixedIncomes(ctx)
}

func (s *fixedService) DeleteFixedIncome(ctx context.Context, incomeID string) error {
	if _, err := s.fixedRepo.FindFixedIncomeByID(ctx, incomeID); err != nil {
		return err
	}
	if err := s.fixedRepo.DeleteFixedIncome(ctx, incomeID); err != nil {
		s.LogError(ctx, err, "Failed to delete fixed income", slog.String("income_id", incomeID))
		return err
	}
	s.LogInfo(ctx, "Fixed income deleted", slog.String("income_id", incomeID))
	return nil
}

// Forecast sums the templates into the expected monthly picture.
// Templates carry no dates, so this is an outlook, not a schedule.
func (s *fixedService) Forecast(ctx context.Context) (*domain.Forecast, error) {
	expenses, err := s.fixedRepo.ListFixedExpenses(ctx)
	if err != nil {
		return nil, err
	}
	incomes, err := s.fixedRepo.ListFixedIncomes(ctx)
	if err != nil {
		return nil, err
	}

	var forecast domain.Forecast
	for _, e := range expenses {
		forecast.Expenses = forecast.Expenses.Add(e.Value)
	}
	for _, i := range incomes {
		forecast.Incomes = forecast.Incomes.Add(i.Value)
	}
	forecast.Net = forecast.Incomes.Sub(forecast.Expenses)
	return &forecast, nil
}
