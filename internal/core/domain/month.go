package domain

import (
	"fmt"
	"time"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
)

// monthLayout is the wire form of a statement month ("2024-05").
const monthLayout = "2006-01"

// Month identifies a statement/calendar month (year + month, no day).
// It is totally ordered and is the key budgets and statements hang off.
type Month struct {
	year  int
	month time.Month
}

// NewMonth builds a month key from its parts.
func NewMonth(year int, month time.Month) Month {
	return Month{year: year, month: month}
}

// MonthOf returns the month key the given instant falls in.
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

// ParseMonth parses the "YYYY-MM" wire form.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, s)
	}
	return MonthOf(t), nil
}

// AddMonths steps the key forward (or back) by n calendar months.
// Pure key arithmetic: no day component exists, so there is no
// end-of-month overflow to worry about here.
func (m Month) AddMonths(n int) Month {
	total := m.year*12 + int(m.month) - 1 + n
	return Month{year: total / 12, month: time.Month(total%12 + 1)}
}

func (m Month) Year() int { return m.year }

func (m Month) Month() time.Month { return m.month }

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

func (m Month) Equal(o Month) bool { return m == o }

func (m Month) Before(o Month) bool {
	if m.year != o.year {
		return m.year < o.year
	}
	return m.month < o.month
}

// Contains reports whether the instant falls inside this month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.year && t.Month() == m.month
}

func (m Month) IsZero() bool { return m.year == 0 && m.month == 0 }
