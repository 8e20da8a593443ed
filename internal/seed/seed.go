// Package seed holds the static account data the directory is built from.
// The same data is loaded on every start: the simulation carries no state
// across restarts.
package seed

import (
	"github.com/shopspring/decimal"

	"github.com/barbizo19/Bankist/internal/domain/account"
)

func movements(values ...int64) []decimal.Decimal {
	movs := make([]decimal.Decimal, len(values))
	for i, v := range values {
		movs[i] = decimal.NewFromInt(v)
	}
	return movs
}

// Accounts returns the seed accounts in directory order
func Accounts() []account.Seed {
	return []account.Seed{
		{
			Owner:        "Jonas Schmedtmann",
			Movements:    movements(200, 450, -400, 3000, -650, -130, 70, 1300),
			InterestRate: decimal.NewFromFloat(1.2),
			PIN:          1111,
		},
		{
			Owner:        "Jessica Davis",
			Movements:    movements(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
			InterestRate: decimal.NewFromFloat(1.5),
			PIN:          2222,
		},
		{
			Owner:        "Steven Thomas Williams",
			Movements:    movements(200, -200, 340, -300, -20, 50, 400, -460),
			InterestRate: decimal.NewFromFloat(0.7),
			PIN:          3333,
		},
		{
			Owner:        "Sarah Smith",
			Movements:    movements(430, 1000, 700, 50, 90),
			InterestRate: decimal.NewFromInt(1),
			PIN:          4444,
		},
	}
}
