package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/domain/audit"
	"github.com/barbizo19/Bankist/internal/domain/session"
	"github.com/barbizo19/Bankist/internal/domain/transaction"
	"github.com/barbizo19/Bankist/internal/pkg/crypto"
	"github.com/barbizo19/Bankist/internal/pkg/logger"
	"github.com/barbizo19/Bankist/internal/pkg/metrics"
	"github.com/barbizo19/Bankist/internal/repository"
)

var ten = decimal.NewFromInt(10)

type TransactionService interface {
	Transfer(handle string, req *transaction.TransferRequest) (*transaction.Outcome, error)
	RequestLoan(handle string, req *transaction.LoanRequest) (*transaction.Outcome, error)
	CloseAccount(handle string, req *account.CloseRequest) (*transaction.Outcome, error)
}

type transactionService struct {
	directory repository.DirectoryRepository
	sessions  *session.Store
	auditRepo repository.AuditRepository
}

func NewTransactionService(
	directory repository.DirectoryRepository,
	sessions *session.Store,
	auditRepo repository.AuditRepository,
) TransactionService {
	return &transactionService{
		directory: directory,
		sessions:  sessions,
		auditRepo: auditRepo,
	}
}

// Transfer moves amount from the logged-in account to the recipient. All
// preconditions must hold: positive amount, recipient exists, amount within
// the sender's derived balance, and no self-transfer. Any failure declines
// the whole operation; on success both movements are appended atomically.
func (s *transactionService) Transfer(handle string, req *transaction.TransferRequest) (*transaction.Outcome, error) {
	if !req.Amount.IsPositive() {
		return s.declined(transaction.OperationTransfer, handle, transaction.ReasonNonPositiveAmount, req.Amount), nil
	}

	if req.ToHandle == handle {
		return s.declined(transaction.OperationTransfer, handle, transaction.ReasonSelfTransfer, req.Amount), nil
	}

	err := s.directory.ExecuteTransfer(handle, req.ToHandle, req.Amount)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		// Not-found folds into the same silent decline as any other
		// precondition failure
		return s.declined(transaction.OperationTransfer, handle, transaction.ReasonRecipientNotFound, req.Amount), nil
	case errors.Is(err, repository.ErrInsufficientBalance):
		return s.declined(transaction.OperationTransfer, handle, transaction.ReasonInsufficientBalance, req.Amount), nil
	case err != nil:
		return nil, fmt.Errorf("transfer failed: %w", err)
	}

	return s.applied(transaction.OperationTransfer, handle, req.Amount, map[string]interface{}{
		"to": req.ToHandle,
	}), nil
}

// RequestLoan approves a loan only if some single prior movement is at least
// a tenth of the requested amount. This is a simplistic creditworthiness
// heuristic carried over from the product rules, not a balance check.
func (s *transactionService) RequestLoan(handle string, req *transaction.LoanRequest) (*transaction.Outcome, error) {
	if !req.Amount.IsPositive() {
		return s.declined(transaction.OperationLoan, handle, transaction.ReasonNonPositiveAmount, req.Amount), nil
	}

	acc, err := s.directory.GetByHandle(handle)
	if err != nil {
		return nil, fmt.Errorf("loan request failed: %w", err)
	}

	threshold := req.Amount.Div(ten)
	qualified := false
	for _, mov := range acc.Movements {
		if mov.GreaterThanOrEqual(threshold) {
			qualified = true
			break
		}
	}
	if !qualified {
		return s.declined(transaction.OperationLoan, handle, transaction.ReasonNoQualifyingDeposit, req.Amount), nil
	}

	if err := s.directory.AppendMovement(handle, req.Amount); err != nil {
		return nil, fmt.Errorf("loan request failed: %w", err)
	}

	return s.applied(transaction.OperationLoan, handle, req.Amount, nil), nil
}

// CloseAccount re-authenticates the already logged-in user: the confirmation
// handle must equal the session's handle and the PIN must match that account.
// On success the account leaves the directory and the session ends.
func (s *transactionService) CloseAccount(handle string, req *account.CloseRequest) (*transaction.Outcome, error) {
	if req.Handle != handle {
		return s.declined(transaction.OperationClose, handle, transaction.ReasonWrongCredentials, decimal.Zero), nil
	}

	pin, err := strconv.Atoi(strings.TrimSpace(req.PIN))
	if err != nil {
		return s.declined(transaction.OperationClose, handle, transaction.ReasonWrongCredentials, decimal.Zero), nil
	}

	acc, err := s.directory.GetByHandle(handle)
	if err != nil {
		return nil, fmt.Errorf("close failed: %w", err)
	}

	if !crypto.CheckPIN(pin, acc.PINHash) {
		return s.declined(transaction.OperationClose, handle, transaction.ReasonWrongCredentials, decimal.Zero), nil
	}

	if err := s.directory.Remove(handle); err != nil {
		return nil, fmt.Errorf("close failed: %w", err)
	}
	s.sessions.Clear()

	metrics.UpdateAccountsTotal(s.directory.Count())

	return s.applied(transaction.OperationClose, handle, decimal.Zero, nil), nil
}

func (s *transactionService) applied(op transaction.Operation, handle string, amount decimal.Decimal, meta map[string]interface{}) *transaction.Outcome {
	amt, _ := amount.Float64()
	metrics.RecordOperation(string(op), "applied", amt)

	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["amount"] = amount.String()

	_ = s.auditRepo.Create(&audit.AuditLog{
		EventID:  uuid.New(),
		Handle:   handle,
		Action:   strings.ToUpper(string(op)) + "_APPLIED",
		Status:   "applied",
		Metadata: meta,
	})

	logger.Info("Operation applied",
		zap.String("operation", string(op)),
		zap.String("handle", handle),
	)

	return transaction.Applied()
}

func (s *transactionService) declined(op transaction.Operation, handle string, reason transaction.Reason, amount decimal.Decimal) *transaction.Outcome {
	amt, _ := amount.Float64()
	metrics.RecordOperation(string(op), "declined", amt)

	_ = s.auditRepo.Create(&audit.AuditLog{
		EventID: uuid.New(),
		Handle:  handle,
		Action:  strings.ToUpper(string(op)) + "_DECLINED",
		Status:  "declined",
		Metadata: map[string]interface{}{
			"reason": string(reason),
			"amount": amount.String(),
		},
	})

	logger.Info("Operation declined",
		zap.String("operation", string(op)),
		zap.String("handle", handle),
		zap.String("reason", string(reason)),
	)

	return transaction.Declined(reason)
}
