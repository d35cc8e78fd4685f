package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService exchanges configured credentials for opaque bearer tokens held
// in memory. Tokens expire after the configured TTL.
type AuthService struct {
	username     string
	passwordHash string
	tokenTTL     time.Duration

	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewAuthService(username, passwordHash string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		username:     strings.TrimSpace(username),
		passwordHash: strings.TrimSpace(passwordHash),
		tokenTTL:     tokenTTL,
		tokens:       make(map[string]time.Time),
	}
}

func (s *AuthService) IssueToken(ctx context.Context, req models.TokenRequest) (commons.Response[models.TokenResponse], error) {
	logger.Info("auth service token request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service token validation failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("validation failed", err.Error()), err
	}

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(req.Username)), []byte(s.username)) != 1 {
		err := fmt.Errorf("incorrect username or password")
		return commons.ErrorResponse[models.TokenResponse]("unauthorized", err.Error()), err
	}
	if compareErr := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); compareErr != nil {
		logger.Info("auth service rejected credentials", logger.Fields{
			"username": req.Username,
		})
		err := fmt.Errorf("incorrect username or password")
		return commons.ErrorResponse[models.TokenResponse]("unauthorized", err.Error()), err
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(s.tokenTTL)

	s.mu.Lock()
	s.tokens[token] = expiresAt
	s.mu.Unlock()

	response := models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}

	logger.Info("auth service token issued", logger.Fields{
		"username":  req.Username,
		"expiresAt": response.ExpiresAt,
	})

	return commons.SuccessResponse("token issued successfully", response), nil
}

func (s *AuthService) ValidateToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.tokens[token]
	if !ok {
		return false
	}
	if time.Now().UTC().After(expiresAt) {
		delete(s.tokens, token)
		return false
	}
	return true
}
