package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbizo19/Bankist/internal/domain/transaction"
	"github.com/barbizo19/Bankist/internal/service"
)

type TransactionHandler struct {
	transactionService service.TransactionService
	statementService   service.StatementService
}

func NewTransactionHandler(transactionService service.TransactionService, statementService service.StatementService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		statementService:   statementService,
	}
}

func (h *TransactionHandler) respond(c *gin.Context, handle string, outcome *transaction.Outcome) {
	statement, err := h.statementService.Statement(handle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, OperationResponse{
		Applied:   outcome.Applied,
		Statement: statement,
	})
}

// Transfer godoc
// @Summary Transfer money to another account
// @Description Append a withdrawal to the sender and a deposit to the recipient
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body transaction.TransferRequest true "Transfer details"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/transactions/transfer [post]
func (h *TransactionHandler) Transfer(c *gin.Context) {
	handle, ok := currentHandle(c)
	if !ok {
		return
	}

	var req transaction.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.transactionService.Transfer(handle, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, handle, outcome)
}

// RequestLoan godoc
// @Summary Request a loan
// @Description Approve when some prior movement covers a tenth of the amount
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body transaction.LoanRequest true "Loan details"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/transactions/loan [post]
func (h *TransactionHandler) RequestLoan(c *gin.Context) {
	handle, ok := currentHandle(c)
	if !ok {
		return
	}

	var req transaction.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.transactionService.RequestLoan(handle, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, handle, outcome)
}
