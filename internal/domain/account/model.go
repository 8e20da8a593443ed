package account

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the owning record of identity, credentials and movement history.
// The balance is never stored; it is always derived from Movements.
type Account struct {
	ID           uuid.UUID         `json:"id"`
	Owner        string            `json:"owner"`
	Handle       string            `json:"handle"`
	PINHash      string            `json:"-"` // Never expose in JSON
	Movements    []decimal.Decimal `json:"movements"`
	InterestRate decimal.Decimal   `json:"interest_rate"`
	CreatedAt    time.Time         `json:"created_at"`
}

// FirstName returns the first token of the owner's display name
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Seed is the static data an account is constructed from at startup
type Seed struct {
	Owner        string
	Movements    []decimal.Decimal
	InterestRate decimal.Decimal
	PIN          int
}

// DeriveHandle derives the login handle from an owner's display name:
// the lowercased first rune of each whitespace-separated token, concatenated.
// "Jonas Schmedtmann" becomes "js". An owner with no tokens is a seed-data
// integrity error.
func DeriveHandle(owner string) (string, error) {
	fields := strings.Fields(owner)
	if len(fields) == 0 {
		return "", fmt.Errorf("owner name contains no tokens: %q", owner)
	}

	var b strings.Builder
	for _, field := range fields {
		r := []rune(field)[0]
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String(), nil
}

type LoginRequest struct {
	Handle string `json:"handle" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Welcome   string             `json:"welcome"`
	Statement *StatementResponse `json:"statement"`
}

type CloseRequest struct {
	Handle string `json:"handle" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}

// MovementView is a single rendered ledger row
type MovementView struct {
	Position int             `json:"position"`
	Type     string          `json:"type"` // deposit or withdrawal
	Amount   decimal.Decimal `json:"amount"`
}

// StatementResponse is the view-model handed to the collaborator after every
// successful operation: movements in render order plus the derived aggregates.
type StatementResponse struct {
	Owner              string          `json:"owner"`
	Handle             string          `json:"handle"`
	Movements          []MovementView  `json:"movements"`
	Sorted             bool            `json:"sorted"`
	Balance            decimal.Decimal `json:"balance"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	QualifyingInterest decimal.Decimal `json:"qualifying_interest"`
}
