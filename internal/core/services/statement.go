package services

import (
	"fmt"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/google/uuid"
)

// StatementMonth projects the statement month an installment bills in.
//
// The base month is the installment's own calendar month. A purchase on
// or after the card's closing day misses the current statement and
// bills one month later. When the due day is numerically before the
// closing day, the bill for a statement closed in month M is only due
// in M+1, so everything shifts one further month out.
func StatementMonth(purchaseDate time.Time, closingDay, dueDay int) domain.Month {
	month := domain.MonthOf(purchaseDate)
	if purchaseDate.Day() >= closingDay {
		month = month.AddMonths(1)
	}
	if dueDay < closingDay {
		month = month.AddMonths(1)
	}
	return month
}

// SplitPurchase expands a credit purchase into its dated installment
// records. Installment i is dated the purchase date plus i-1 calendar
// months (Go's date normalization applies at month ends: Jan 31 + 1
// month lands on Mar 2/3). The total is divided exactly; the first
// installment absorbs the centavo remainder. Multi-installment
// descriptions carry an "(i/N)" suffix. An installment count below 1
// yields nil, like Money.Split.
func SplitPurchase(cardID, description, category string, total domain.Money, installments int, date time.Time) []domain.CardPurchase {
	if installments < 1 {
		return nil
	}
	shares := total.Split(installments)
	purchases := make([]domain.CardPurchase, installments)
	for i := range purchases {
		desc := description
		if installments > 1 {
			desc = fmt.Sprintf("%s (%d/%d)", description, i+1, installments)
		}
		purchases[i] = domain.CardPurchase{
			PurchaseID:        uuid.NewString(),
			Description:       desc,
			CardID:            cardID,
			Category:          category,
			Date:              date.AddDate(0, i, 0),
			TotalValue:        shares[i],
			InstallmentIndex:  i + 1,
			InstallmentsCount: installments,
			OriginalTotal:     total,
			Status:            domain.PurchaseOpen,
		}
	}
	return purchases
}
