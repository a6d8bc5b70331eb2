package dto

import (
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFixedItemRequest defines a recurring income/expense template.
type CreateFixedItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Value       decimal.Decimal `json:"value" binding:"required"`
}

// RealizeFixedExpenseRequest converts an expense template into a
// concrete ledger event, paid from a wallet or pushed onto a card.
type RealizeFixedExpenseRequest struct {
	Method   string           `json:"method" binding:"required,oneof=wallet card"`
	SourceID string           `json:"sourceID" binding:"required"` // wallet or card id per Method
	Value    *decimal.Decimal `json:"value"`                       // Optional override of the template value
}

// ReceiveFixedIncomeRequest converts an income template into a
// concrete entrada for a wallet.
type ReceiveFixedIncomeRequest struct {
	WalletID string           `json:"walletID" binding:"required"`
	Value    *decimal.Decimal `json:"value"` // Optional override of the template value
}

// FixedExpenseResponse defines the data returned for an expense template.
type FixedExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// FixedIncomeResponse defines the data returned for an income template.
type FixedIncomeResponse struct {
	IncomeID    string          `json:"incomeID"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// SummaryResponse is the dashboard view: live total balance plus the
// fixed-items forecast.
type SummaryResponse struct {
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	FixedIncomes  decimal.Decimal `json:"fixedIncomes"`
	FixedExpenses decimal.Decimal `json:"fixedExpenses"`
	Forecast      decimal.Decimal `json:"forecast"`
}

// ToFixedExpenseResponse converts an expense template to its DTO.
func ToFixedExpenseResponse(e *domain.FixedExpense) FixedExpenseResponse {
	return FixedExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Description: e.Description,
		Value:       e.Value.Decimal(),
	}
}

// ToFixedIncomeResponse converts an income template to its DTO.
func ToFixedIncomeResponse(i *domain.FixedIncome) FixedIncomeResponse {
	return FixedIncomeResponse{
		IncomeID:    i.IncomeID,
		Description: i.Description,
		Value:       i.Value.Decimal(),
	}
}
