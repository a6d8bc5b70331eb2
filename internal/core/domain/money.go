package domain

import (
	"github.com/shopspring/decimal"
)

// Money is an exact currency amount in minor units (centavos).
// All arithmetic inside the core happens on this representation;
// decimal values only appear at the API boundary.
type Money int64

// MoneyFromDecimal converts a boundary decimal amount (e.g. 123.45) to
// minor units, rounding half-up on any sub-cent digits.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).Round(0).IntPart())
}

// Decimal converts back to the display representation (two fraction digits).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Sub(o Money) Money { return m - o }

func (m Money) Neg() Money { return -m }

func (m Money) IsZero() bool { return m == 0 }

func (m Money) IsNegative() bool { return m < 0 }

func (m Money) IsPositive() bool { return m > 0 }

// Split divides the amount into n shares that sum exactly to m.
// The plain share is m/n truncated toward zero; the first share absorbs
// the division remainder so no centavo is lost or invented.
func (m Money) Split(n int) []Money {
	if n <= 0 {
		return nil
	}
	share := int64(m) / int64(n)
	remainder := int64(m) - share*int64(n)
	shares := make([]Money, n)
	for i := range shares {
		shares[i] = Money(share)
	}
	shares[0] += Money(remainder)
	return shares
}

// String renders the amount with two fraction digits, e.g. "1234.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
