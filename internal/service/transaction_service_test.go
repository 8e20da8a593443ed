package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/domain/ledger"
	"github.com/barbizo19/Bankist/internal/domain/session"
	"github.com/barbizo19/Bankist/internal/domain/transaction"
	"github.com/barbizo19/Bankist/internal/repository"
)

func serviceSeeds() []account.Seed {
	movements := func(values ...int64) []decimal.Decimal {
		movs := make([]decimal.Decimal, len(values))
		for i, v := range values {
			movs[i] = decimal.NewFromInt(v)
		}
		return movs
	}

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
			Owner:        "Sarah Smith",
			Movements:    movements(430, 1000, 700, 50, 90),
			InterestRate: decimal.NewFromInt(1),
			PIN:          4444,
		},
	}
}

func setupTransactionServiceTest(t *testing.T) (TransactionService, repository.DirectoryRepository, *session.Store, repository.AuditRepository) {
	directory, err := repository.NewDirectoryRepository(serviceSeeds())
	assert.NoError(t, err)

	sessions := session.NewStore()
	auditRepo := repository.NewAuditRepository()
	svc := NewTransactionService(directory, sessions, auditRepo)
	return svc, directory, sessions, auditRepo
}

func balanceOf(t *testing.T, directory repository.DirectoryRepository, handle string) decimal.Decimal {
	acc, err := directory.GetByHandle(handle)
	assert.NoError(t, err)
	return ledger.Balance(acc.Movements)
}

func movementCount(t *testing.T, directory repository.DirectoryRepository, handle string) int {
	acc, err := directory.GetByHandle(handle)
	assert.NoError(t, err)
	return len(acc.Movements)
}

// ==================== Transfer Tests ====================

func TestTransfer_Success(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	recipientBefore := balanceOf(t, directory, "jd")

	outcome, err := svc.Transfer("js", &transaction.TransferRequest{
		ToHandle: "jd",
		Amount:   decimal.NewFromInt(100),
	})
	assert.NoError(t, err)
	assert.True(t, outcome.Applied)

	assert.True(t, balanceOf(t, directory, "js").Equal(decimal.NewFromInt(3740)))
	assert.True(t, balanceOf(t, directory, "jd").Equal(recipientBefore.Add(decimal.NewFromInt(100))))
}

func TestTransfer_SelfTransferDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	before := balanceOf(t, directory, "js")
	countBefore := movementCount(t, directory, "js")

	outcome, err := svc.Transfer("js", &transaction.TransferRequest{
		ToHandle: "js",
		Amount:   decimal.NewFromInt(100),
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, transaction.ReasonSelfTransfer, outcome.Reason)

	assert.True(t, balanceOf(t, directory, "js").Equal(before))
	assert.Equal(t, countBefore, movementCount(t, directory, "js"))
}

func TestTransfer_NonPositiveAmountDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		outcome, err := svc.Transfer("js", &transaction.TransferRequest{
			ToHandle: "jd",
			Amount:   amount,
		})
		assert.NoError(t, err)
		assert.False(t, outcome.Applied)
		assert.Equal(t, transaction.ReasonNonPositiveAmount, outcome.Reason)
	}

	assert.Equal(t, 8, movementCount(t, directory, "js"))
	assert.Equal(t, 8, movementCount(t, directory, "jd"))
}

func TestTransfer_UnknownRecipientDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	outcome, err := svc.Transfer("js", &transaction.TransferRequest{
		ToHandle: "nobody",
		Amount:   decimal.NewFromInt(100),
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, transaction.ReasonRecipientNotFound, outcome.Reason)

	assert.Equal(t, 8, movementCount(t, directory, "js"))
}

func TestTransfer_InsufficientBalanceDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	// Balance is 3840; one unit more must decline
	outcome, err := svc.Transfer("js", &transaction.TransferRequest{
		ToHandle: "jd",
		Amount:   decimal.NewFromInt(3841),
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, transaction.ReasonInsufficientBalance, outcome.Reason)

	// Atomicity: neither side changed
	assert.Equal(t, 8, movementCount(t, directory, "js"))
	assert.Equal(t, 8, movementCount(t, directory, "jd"))
}

func TestTransfer_ExactBalanceAllowed(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	outcome, err := svc.Transfer("js", &transaction.TransferRequest{
		ToHandle: "jd",
		Amount:   decimal.NewFromInt(3840),
	})
	assert.NoError(t, err)
	assert.True(t, outcome.Applied)
	assert.True(t, balanceOf(t, directory, "js").IsZero())
}

// ==================== Loan Tests ====================

func TestRequestLoan_Success(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	// 3000 qualifies any loan up to 30000
	outcome, err := svc.RequestLoan("js", &transaction.LoanRequest{
		Amount: decimal.NewFromInt(20000),
	})
	assert.NoError(t, err)
	assert.True(t, outcome.Applied)

	acc, err := directory.GetByHandle("js")
	assert.NoError(t, err)
	assert.Len(t, acc.Movements, 9)
	assert.True(t, acc.Movements[8].Equal(decimal.NewFromInt(20000)))
}

func TestRequestLoan_NoQualifyingDepositDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("ss")

	// Sarah's largest movement is 1000, so a 10001+ loan has no movement
	// covering a tenth of it
	outcome, err := svc.RequestLoan("ss", &transaction.LoanRequest{
		Amount: decimal.NewFromInt(10001),
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, transaction.ReasonNoQualifyingDeposit, outcome.Reason)

	assert.Equal(t, 5, movementCount(t, directory, "ss"))
}

func TestRequestLoan_TenPercentRuleBoundary(t *testing.T) {
	svc, _, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("ss")

	// Largest movement is exactly 1000: a loan of 10000 is the boundary case
	outcome, err := svc.RequestLoan("ss", &transaction.LoanRequest{
		Amount: decimal.NewFromInt(10000),
	})
	assert.NoError(t, err)
	assert.True(t, outcome.Applied)
}

func TestRequestLoan_NonPositiveAmountDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	outcome, err := svc.RequestLoan("js", &transaction.LoanRequest{
		Amount: decimal.Zero,
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, transaction.ReasonNonPositiveAmount, outcome.Reason)

	assert.Equal(t, 8, movementCount(t, directory, "js"))
}

// ==================== Close Tests ====================

func TestCloseAccount_Success(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	outcome, err := svc.CloseAccount("js", &account.CloseRequest{
		Handle: "js",
		PIN:    "1111",
	})
	assert.NoError(t, err)
	assert.True(t, outcome.Applied)

	_, err = directory.GetByHandle("js")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	// Session ended
	_, ok := sessions.Current()
	assert.False(t, ok)
}

func TestCloseAccount_WrongPINDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	outcome, err := svc.CloseAccount("js", &account.CloseRequest{
		Handle: "js",
		PIN:    "9999",
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, transaction.ReasonWrongCredentials, outcome.Reason)

	// Account still present, session still live
	_, err = directory.GetByHandle("js")
	assert.NoError(t, err)
	handle, ok := sessions.Current()
	assert.True(t, ok)
	assert.Equal(t, "js", handle)
}

func TestCloseAccount_WrongHandleDeclined(t *testing.T) {
	svc, directory, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	outcome, err := svc.CloseAccount("js", &account.CloseRequest{
		Handle: "jd",
		PIN:    "1111",
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)

	_, err = directory.GetByHandle("js")
	assert.NoError(t, err)
	assert.Equal(t, 3, directory.Count())
}

func TestCloseAccount_NonNumericPINDeclined(t *testing.T) {
	svc, _, sessions, _ := setupTransactionServiceTest(t)
	sessions.Start("js")

	outcome, err := svc.CloseAccount("js", &account.CloseRequest{
		Handle: "js",
		PIN:    "abcd",
	})
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
}

// ==================== Audit Trail ====================

func TestOutcomes_AreAudited(t *testing.T) {
	svc, _, sessions, auditRepo := setupTransactionServiceTest(t)
	sessions.Start("js")

	_, err := svc.Transfer("js", &transaction.TransferRequest{
		ToHandle: "jd",
		Amount:   decimal.NewFromInt(100),
	})
	assert.NoError(t, err)

	_, err = svc.Transfer("js", &transaction.TransferRequest{
		ToHandle: "js",
		Amount:   decimal.NewFromInt(100),
	})
	assert.NoError(t, err)

	logs := auditRepo.List()
	assert.Len(t, logs, 2)
	assert.Equal(t, "TRANSFER_APPLIED", logs[0].Action)
	assert.Equal(t, "TRANSFER_DECLINED", logs[1].Action)
	assert.Equal(t, "self_transfer", logs[1].Metadata["reason"])
}
