package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/service"
)

type AccountHandler struct {
	statementService   service.StatementService
	transactionService service.TransactionService
}

func NewAccountHandler(statementService service.StatementService, transactionService service.TransactionService) *AccountHandler {
	return &AccountHandler{
		statementService:   statementService,
		transactionService: transactionService,
	}
}

// OperationResponse is the envelope for every mutating operation: the tagged
// applied flag plus the refreshed statement. Declined operations still answer
// 200 with applied=false and an unchanged statement; the engine surfaces no
// failure reason to the collaborator.
type OperationResponse struct {
	Applied      bool                       `json:"applied"`
	SessionEnded bool                       `json:"session_ended,omitempty"`
	Statement    *account.StatementResponse `json:"statement,omitempty"`
}

func currentHandle(c *gin.Context) (string, bool) {
	val, exists := c.Get("handle")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return val.(string), true
}

// GetStatement godoc
// @Summary Get the current account statement
// @Description Movements in render order plus balance, income, expense and interest
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} account.StatementResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/statement [get]
func (h *AccountHandler) GetStatement(c *gin.Context) {
	handle, ok := currentHandle(c)
	if !ok {
		return
	}

	statement, err := h.statementService.Statement(handle)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statement)
}

// ToggleSort godoc
// @Summary Toggle the movement sort order
// @Description Flip between insertion order and ascending-by-amount views
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} account.StatementResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/statement/sort [post]
func (h *AccountHandler) ToggleSort(c *gin.Context) {
	handle, ok := currentHandle(c)
	if !ok {
		return
	}

	statement, err := h.statementService.ToggleSort(handle)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statement)
}

// Close godoc
// @Summary Close the current account
// @Description Re-authenticate and remove the account from the directory
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body account.CloseRequest true "Confirmation credentials"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/account/close [post]
func (h *AccountHandler) Close(c *gin.Context) {
	handle, ok := currentHandle(c)
	if !ok {
		return
	}

	var req account.CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.transactionService.CloseAccount(handle, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if outcome.Applied {
		// The account is gone; signal session end instead of a statement
		c.JSON(http.StatusOK, OperationResponse{Applied: true, SessionEnded: true})
		return
	}

	statement, err := h.statementService.Statement(handle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, OperationResponse{Applied: false, Statement: statement})
}
