package dto

import (
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBudgetLimitRequest defines an idempotent limit upsert for a
// (month, category) pair.
type SetBudgetLimitRequest struct {
	Month    string          `json:"month" binding:"required"` // "YYYY-MM"
	Category string          `json:"category" binding:"required"`
	Limit    decimal.Decimal `json:"limit"`
}

// CategoryBudgetResponse is one reconciled row of the monthly overview.
type CategoryBudgetResponse struct {
	Category  string              `json:"category"`
	Limit     decimal.Decimal     `json:"limit"`
	Spent     decimal.Decimal     `json:"spent"`
	Remaining decimal.Decimal     `json:"remaining"`
	Percent   float64             `json:"percent"`
	Status    domain.BudgetStatus `json:"status"`
}

// ToCategoryBudgetResponse converts a reconciled row to its DTO.
func ToCategoryBudgetResponse(row *domain.CategoryBudget) CategoryBudgetResponse {
	return CategoryBudgetResponse{
		Category:  row.Category,
		Limit:     row.Limit.Decimal(),
		Spent:     row.Spent.Decimal(),
		Remaining: row.Remaining.Decimal(),
		Percent:   row.Percent,
		Status:    row.Status,
	}
}

// ToCategoryBudgetResponses converts the full overview.
func ToCategoryBudgetResponses(rows []domain.CategoryBudget) []CategoryBudgetResponse {
	out := make([]CategoryBudgetResponse, len(rows))
	for i := range rows {
		out[i] = ToCategoryBudgetResponse(&rows[i])
	}
	return out
}
