package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, ttl time.Duration) *services.AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return services.NewAuthService("ledger-api", string(hash), ttl)
}

func TestAuthServiceIssuesTokenForValidCredentials(t *testing.T) {
	svc := newAuthService(t, time.Minute)

	resp, err := svc.IssueToken(context.Background(), models.TokenRequest{
		Username: "ledger-api",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if resp.Data.AccessToken == "" {
		t.Fatal("expected a token")
	}
	if resp.Data.TokenType != "Bearer" {
		t.Fatalf("expected token type Bearer, got %s", resp.Data.TokenType)
	}
	if !svc.ValidateToken(resp.Data.AccessToken) {
		t.Fatal("issued token must validate")
	}
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t, time.Minute)

	if _, err := svc.IssueToken(context.Background(), models.TokenRequest{
		Username: "ledger-api",
		Password: "wrong",
	}); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if _, err := svc.IssueToken(context.Background(), models.TokenRequest{
		Username: "someone-else",
		Password: "correct-horse",
	}); err == nil {
		t.Fatal("expected error for wrong username")
	}
}

func TestAuthServiceTokenExpires(t *testing.T) {
	svc := newAuthService(t, -time.Second)

	resp, err := svc.IssueToken(context.Background(), models.TokenRequest{
		Username: "ledger-api",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if svc.ValidateToken(resp.Data.AccessToken) {
		t.Fatal("expired token must not validate")
	}
}

func TestAuthServiceRejectsUnknownToken(t *testing.T) {
	svc := newAuthService(t, time.Minute)

	if svc.ValidateToken("not-a-real-token") {
		t.Fatal("unknown token must not validate")
	}
	if svc.ValidateToken("") {
		t.Fatal("empty token must not validate")
	}
}
