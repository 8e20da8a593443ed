package transaction

import (
	"github.com/shopspring/decimal"
)

type Operation string

const (
	OperationTransfer Operation = "transfer"
	OperationLoan     Operation = "loan"
	OperationClose    Operation = "close"
)

// Reason tags why an operation was declined. Reasons are internal: the
// user-facing contract is a silent no-op, so they never appear in responses,
// but the engine keeps them explicit for tests and the audit trail.
type Reason string

const (
	ReasonNonPositiveAmount   Reason = "non_positive_amount"
	ReasonRecipientNotFound   Reason = "recipient_not_found"
	ReasonInsufficientBalance Reason = "insufficient_balance"
	ReasonSelfTransfer        Reason = "self_transfer"
	ReasonNoQualifyingDeposit Reason = "no_qualifying_deposit"
	ReasonWrongCredentials    Reason = "wrong_credentials"
	ReasonNotLoggedIn         Reason = "not_logged_in"
)

// Outcome is the tagged result of a mutating operation: either it applied
// exactly once, or nothing changed.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  Reason `json:"-"`
}

func Applied() *Outcome {
	return &Outcome{Applied: true}
}

func Declined(reason Reason) *Outcome {
	return &Outcome{Applied: false, Reason: reason}
}

type TransferRequest struct {
	ToHandle string          `json:"to" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
