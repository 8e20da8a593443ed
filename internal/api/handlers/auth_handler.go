package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
// @Summary Log in with handle and PIN
// @Description Authenticate against the account directory and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body account.LoginRequest true "Login credentials"
// @Success 200 {object} account.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
