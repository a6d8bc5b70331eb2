package services_test

import (
	"testing"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/couplefin/couple_finance_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestStatementMonth(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		closingDay int
		dueDay     int
		want       string
	}{
		// Due day after closing day: only the closing shift applies.
		{"before closing, due after closing", day(2024, time.May, 10), 15, 22, "2024-05"},
		{"on closing day", day(2024, time.May, 15), 15, 22, "2024-06"},
		{"after closing", day(2024, time.May, 20), 15, 22, "2024-06"},

		// Due day before closing day: everything shifts one further out.
		{"before closing, due before closing", day(2024, time.May, 20), 25, 10, "2024-06"},
		{"after closing, due before closing", day(2024, time.May, 28), 25, 10, "2024-07"},

		// Year boundaries.
		{"december purchase after closing", day(2024, time.December, 27), 25, 10, "2025-02"},
		{"november purchase rolls into january", day(2024, time.November, 26), 25, 10, "2025-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.StatementMonth(tt.date, tt.closingDay, tt.dueDay)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestStatementMonthDeterministic(t *testing.T) {
	date := day(2024, time.May, 25)
	first := services.StatementMonth(date, 25, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, services.StatementMonth(date, 25, 10))
	}
}

func TestSplitPurchaseSingleInstallment(t *testing.T) {
	date := day(2024, time.May, 3)
	purchases := services.SplitPurchase("card-1", "Geladeira", "Eletrônicos", 150000, 1, date)

	require.Len(t, purchases, 1)
	p := purchases[0]
	assert.Equal(t, "Geladeira", p.Description, "no suffix on single installments")
	assert.Equal(t, domain.Money(150000), p.TotalValue)
	assert.Equal(t, domain.Money(150000), p.OriginalTotal)
	assert.Equal(t, 1, p.InstallmentIndex)
	assert.Equal(t, 1, p.InstallmentsCount)
	assert.Equal(t, domain.PurchaseOpen, p.Status)
	assert.True(t, p.Date.Equal(date))
}

func TestSplitPurchaseInstallmentSumInvariant(t *testing.T) {
	tests := []struct {
		name         string
		total        domain.Money
		installments int
	}{
		{"even split", 120000, 12},
		{"remainder to first", 100000, 3},
		{"awkward amount", 99999, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purchases := services.SplitPurchase("card-1", "Compra", "Mercado", tt.total, tt.installments, day(2024, time.May, 3))
			require.Len(t, purchases, tt.installments)

			var sum domain.Money
			for _, p := range purchases {
				sum = sum.Add(p.TotalValue)
				assert.Equal(t, tt.total, p.OriginalTotal)
			}
			assert.Equal(t, tt.total, sum, "installment values must sum to the purchase total")

			// The remainder, if any, sits on the first installment.
			for i := 2; i < tt.installments; i++ {
				assert.Equal(t, purchases[1].TotalValue, purchases[i].TotalValue)
			}
		})
	}
}

func TestSplitPurchaseDatesStepByMonth(t *testing.T) {
	date := day(2024, time.November, 15)
	purchases := services.SplitPurchase("card-1", "Notebook", "Eletrônicos", 300000, 4, date)

	require.Len(t, purchases, 4)
	for i, p := range purchases {
		assert.True(t, p.Date.Equal(date.AddDate(0, i, 0)), "installment %d", i+1)
		assert.Equal(t, i+1, p.InstallmentIndex)
		assert.Equal(t, 4, p.InstallmentsCount)
	}
	// Third installment crosses into the next year.
	assert.Equal(t, 2025, purchases[2].Date.Year())
}

func TestSplitPurchaseDescriptions(t *testing.T) {
	purchases := services.SplitPurchase("card-1", "Sofá", "Lazer", 90000, 3, day(2024, time.May, 3))
	require.Len(t, purchases, 3)
	assert.Equal(t, "Sofá (1/3)", purchases[0].Description)
	assert.Equal(t, "Sofá (2/3)", purchases[1].Description)
	assert.Equal(t, "Sofá (3/3)", purchases[2].Description)
}

func TestSplitPurchaseInvalidCountYieldsNil(t *testing.T) {
	assert.Nil(t, services.SplitPurchase("card-1", "Compra", "Mercado", 10000, 0, day(2025, time.May, 10)))
	assert.Nil(t, services.SplitPurchase("card-1", "Compra", "Mercado", 10000, -1, day(2025, time.May, 10)))
}

func TestSplitPurchaseEndOfMonthNormalizes(t *testing.T) {
	// Jan 31 + 1 month normalizes past February's end; the value split
	// is unaffected either way.
	purchases := services.SplitPurchase("card-1", "Compra", "Mercado", 20000, 2, day(2025, time.January, 31))
	require.Len(t, purchases, 2)
	assert.Equal(t, time.March, purchases[1].Date.Month())
}
