package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/domain/audit"
	"github.com/barbizo19/Bankist/internal/domain/session"
	"github.com/barbizo19/Bankist/internal/pkg/crypto"
	"github.com/barbizo19/Bankist/internal/pkg/jwt"
	"github.com/barbizo19/Bankist/internal/pkg/logger"
	"github.com/barbizo19/Bankist/internal/pkg/metrics"
	"github.com/barbizo19/Bankist/internal/repository"
)

type AuthService interface {
	Login(req *account.LoginRequest) (*account.LoginResponse, error)
}

type authService struct {
	directory  repository.DirectoryRepository
	sessions   *session.Store
	auditRepo  repository.AuditRepository
	jwtService *jwt.JWTService
	statements StatementService
}

func NewAuthService(
	directory repository.DirectoryRepository,
	sessions *session.Store,
	auditRepo repository.AuditRepository,
	jwtService *jwt.JWTService,
	statements StatementService,
) AuthService {
	return &authService{
		directory:  directory,
		sessions:   sessions,
		auditRepo:  auditRepo,
		jwtService: jwtService,
		statements: statements,
	}
}

// Login matches the submitted handle and PIN against the directory. The
// failure outcome never distinguishes an unknown handle from a wrong PIN,
// and a failed attempt leaves any live session untouched.
func (s *authService) Login(req *account.LoginRequest) (*account.LoginResponse, error) {
	pin, err := strconv.Atoi(strings.TrimSpace(req.PIN))
	if err != nil {
		return nil, s.loginFailed(req.Handle)
	}

	acc, err := s.directory.GetByHandle(req.Handle)
	if err != nil {
		return nil, s.loginFailed(req.Handle)
	}

	if !crypto.CheckPIN(pin, acc.PINHash) {
		return nil, s.loginFailed(req.Handle)
	}

	// Success: start a fresh session with the sort toggle reset
	s.sessions.Start(acc.Handle)

	token, expiresAt, err := s.jwtService.GenerateToken(acc.ID, acc.Handle, acc.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	statement, err := s.statements.Statement(acc.Handle)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt(true)
	metrics.RecordAuthTokenGenerated()

	_ = s.auditRepo.Create(&audit.AuditLog{
		EventID: uuid.New(),
		Handle:  acc.Handle,
		Action:  "LOGIN",
		Status:  "success",
	})

	logger.Info("Login succeeded", zap.String("handle", acc.Handle))

	return &account.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Welcome:   fmt.Sprintf("Welcome back, %s", acc.FirstName()),
		Statement: statement,
	}, nil
}

func (s *authService) loginFailed(handle string) error {
	metrics.RecordAuthAttempt(false)

	_ = s.auditRepo.Create(&audit.AuditLog{
		EventID: uuid.New(),
		Handle:  handle,
		Action:  "LOGIN",
		Status:  "failed",
	})

	logger.Warn("Login failed", zap.String("handle", handle))

	// Single indistinct outcome for both factors
	return fmt.Errorf("invalid handle or PIN")
}
