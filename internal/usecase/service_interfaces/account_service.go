package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.CreateAccountResponse], error)
	GetBalance(ctx context.Context, accountID int64) (commons.Response[models.BalanceResponse], error)
	ListAccounts(ctx context.Context, customerID int64) (commons.Response[models.ListAccountsResponse], error)
}
