package domain_test

import (
	"testing"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBudgetKey(t *testing.T) {
	m := domain.NewMonth(2024, time.May)
	assert.Equal(t, "2024-05_Mercado", domain.BudgetKey(m, "Mercado"))
}

func TestReconcileBudget(t *testing.T) {
	tests := []struct {
		name       string
		limit      domain.Money
		spent      domain.Money
		wantStatus domain.BudgetStatus
	}{
		{"no limit set", 0, 5000, domain.BudgetNoGoal},
		{"well under limit", 100000, 20000, domain.BudgetOK},
		{"exactly three quarters", 100000, 75000, domain.BudgetOK},
		{"just past warning threshold", 100000, 75001, domain.BudgetWarning},
		{"at the limit", 100000, 100000, domain.BudgetOver},
		{"past the limit", 100000, 150000, domain.BudgetOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := domain.ReconcileBudget("Mercado", tt.limit, tt.spent)
			assert.Equal(t, tt.wantStatus, row.Status)
			assert.Equal(t, tt.limit.Sub(tt.spent), row.Remaining)
		})
	}
}

func TestReconcileBudgetNoGoalHasZeroPercent(t *testing.T) {
	row := domain.ReconcileBudget("Lazer", 0, 12345)
	assert.Equal(t, domain.BudgetNoGoal, row.Status)
	assert.Zero(t, row.Percent)
}
