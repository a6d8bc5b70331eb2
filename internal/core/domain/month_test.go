package domain_test

import (
	"testing"
	"time"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := domain.ParseMonth("2024-05")
	require.NoError(t, err)
	assert.Equal(t, 2024, m.Year())
	assert.Equal(t, time.May, m.Month())
	assert.Equal(t, "2024-05", m.String())
}

func TestParseMonthInvalid(t *testing.T) {
	for _, input := range []string{"", "2024", "05-2024", "2024-13", "2024-05-01"} {
		_, err := domain.ParseMonth(input)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %q", input)
	}
}

func TestMonthAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start string
		n     int
		want  string
	}{
		{"within year", "2024-05", 1, "2024-06"},
		{"across year end", "2024-11", 2, "2025-01"},
		{"december rolls over", "2024-12", 1, "2025-01"},
		{"several years", "2024-01", 25, "2026-02"},
		{"backwards", "2024-01", -1, "2023-12"},
		{"zero", "2024-07", 0, "2024-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := domain.ParseMonth(tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, start.AddMonths(tt.n).String())
		})
	}
}

func TestMonthOrdering(t *testing.T) {
	early := domain.NewMonth(2024, time.March)
	late := domain.NewMonth(2024, time.April)
	nextYear := domain.NewMonth(2025, time.January)

	assert.True(t, early.Before(late))
	assert.True(t, late.Before(nextYear))
	assert.False(t, late.Before(early))
	assert.True(t, early.Equal(domain.NewMonth(2024, time.March)))
}

func TestMonthContains(t *testing.T) {
	m := domain.NewMonth(2024, time.May)
	assert.True(t, m.Contains(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, m.Contains(time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)))
}

func TestMonthOf(t *testing.T) {
	m := domain.MonthOf(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02", m.String())
}
