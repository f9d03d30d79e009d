package models

import (
	"fmt"
	"math"
)

// Money is an amount in KES cents. All pricing arithmetic happens on this
// integer representation; floats only appear at the input boundary (weights,
// declared values, rate fractions) and are rounded once per component.
type Money int64

// Shillings converts a whole-shilling amount to Money.
func Shillings(kes int64) Money {
	return Money(kes * 100)
}

// MoneyFromFloat rounds a shilling amount (possibly fractional) to cents.
func MoneyFromFloat(kes float64) Money {
	return Money(math.Round(kes * 100))
}

// MulFloat scales the amount by f and rounds to the nearest cent.
func (m Money) MulFloat(f float64) Money {
	return Money(math.Round(float64(m) * f))
}

// MulInt scales the amount by an exact integer factor.
func (m Money) MulInt(n int64) Money {
	return Money(int64(m) * n)
}

// Float returns the amount in shillings for JSON payloads and templates.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return fmt.Sprintf("KES %.2f", m.Float())
}

// MaxMoney returns the larger of two amounts.
func MaxMoney(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}
