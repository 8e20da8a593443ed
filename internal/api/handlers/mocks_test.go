package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/domain/transaction"
)

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(req *account.LoginRequest) (*account.LoginResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.LoginResponse), args.Error(1)
}

// MockStatementService is a mock implementation of service.StatementService
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) Statement(handle string) (*account.StatementResponse, error) {
	args := m.Called(handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.StatementResponse), args.Error(1)
}

func (m *MockStatementService) ToggleSort(handle string) (*account.StatementResponse, error) {
	args := m.Called(handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.StatementResponse), args.Error(1)
}

// MockTransactionService is a mock implementation of service.TransactionService
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Transfer(handle string, req *transaction.TransferRequest) (*transaction.Outcome, error) {
	args := m.Called(handle, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Outcome), args.Error(1)
}

func (m *MockTransactionService) RequestLoan(handle string, req *transaction.LoanRequest) (*transaction.Outcome, error) {
	args := m.Called(handle, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Outcome), args.Error(1)
}

func (m *MockTransactionService) CloseAccount(handle string, req *account.CloseRequest) (*transaction.Outcome, error) {
	args := m.Called(handle, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Outcome), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withHandle stands in for the auth middleware in handler tests
func withHandle(handle string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("handle", handle)
		c.Next()
	}
}
