// Package ledger holds the pure aggregate functions computed over an
// account's movement sequence. All functions are total and O(n); they never
// mutate their input.
package ledger

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Balance returns the sum of all movements, zero for an empty sequence
func Balance(movements []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, mov := range movements {
		sum = sum.Add(mov)
	}
	return sum
}

// TotalIncome returns the sum of all positive movements
func TotalIncome(movements []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, mov := range movements {
		if mov.IsPositive() {
			sum = sum.Add(mov)
		}
	}
	return sum
}

// TotalExpense returns the absolute value of the sum of all negative
// movements, so the result is always non-negative
func TotalExpense(movements []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, mov := range movements {
		if mov.IsNegative() {
			sum = sum.Add(mov)
		}
	}
	return sum.Abs()
}

// QualifyingInterest computes interest per deposit at the given percentage
// rate and sums only the interest amounts of at least 1. The threshold applies
// to the computed interest, not the deposit, so small deposits on low rates
// contribute nothing.
func QualifyingInterest(movements []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	sum := decimal.Zero
	for _, mov := range movements {
		if !mov.IsPositive() {
			continue
		}
		interest := mov.Mul(rate).Div(oneHundred)
		if interest.GreaterThanOrEqual(one) {
			sum = sum.Add(interest)
		}
	}
	return sum
}
