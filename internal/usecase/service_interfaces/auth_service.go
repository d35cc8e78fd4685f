package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
)

type AuthService interface {
	IssueToken(ctx context.Context, req models.TokenRequest) (commons.Response[models.TokenResponse], error)
	ValidateToken(token string) bool
}
