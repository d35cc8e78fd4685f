package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.CreateAccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", err.Error()), err
	}

	exists, err := s.customerRepo.Exists(ctx, req.CustomerID)
	if err != nil {
		logger.Error("account service create account customer check failed", err, logger.Fields{
			"customerId": req.CustomerID,
		})
		return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
	}
	if !exists {
		err := domain.ErrRecordNotFound
		return commons.ErrorResponse[models.CreateAccountResponse]("Customer not found", err.Error()), err
	}

	balance, err := parseOpeningBalance(req.InitialDeposit)
	if err != nil {
		logger.Error("account service create account parse opening balance failed", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("Invalid amount", err.Error()), err
	}

	created, err := s.accountRepo.Create(ctx, domain.Account{
		CustomerID: req.CustomerID,
		Balance:    balance,
	})
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"customerId": req.CustomerID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CreateAccountResponse]("Customer not found", err.Error()), err
		}
		return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	response := models.CreateAccountResponse{
		AccountID:  created.ID,
		CustomerID: created.CustomerID,
		Balance:    created.Balance.StringFixed(2),
		CreatedAt:  created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":  response.AccountID,
		"customerId": response.CustomerID,
		"balance":    response.Balance,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

func (s *AccountService) GetBalance(ctx context.Context, accountID int64) (commons.Response[models.BalanceResponse], error) {
	logger.Info("account service get balance request", logger.Fields{
		"accountId": accountID,
	})

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("Account not found", err.Error()), err
		}
		logger.Error("account service get balance failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.BalanceResponse]("failed to get balance", "Unable to fetch balance right now"), err
	}

	response := models.BalanceResponse{
		AccountID: account.ID,
		Balance:   account.Balance.StringFixed(2),
	}

	return commons.SuccessResponse("balance fetched successfully", response), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, customerID int64) (commons.Response[models.ListAccountsResponse], error) {
	logger.Info("account service list accounts request", logger.Fields{
		"customerId": customerID,
	})

	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		logger.Error("account service list accounts customer check failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.ListAccountsResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}
	if !exists {
		err := domain.ErrRecordNotFound
		return commons.ErrorResponse[models.ListAccountsResponse]("Customer not found", err.Error()), err
	}

	accounts, err := s.accountRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.ListAccountsResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	views := make([]models.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, models.AccountView{
			AccountID:  account.ID,
			CustomerID: account.CustomerID,
			Balance:    account.Balance.StringFixed(2),
			CreatedAt:  account.CreatedAt.Format(time.RFC3339),
		})
	}

	response := models.ListAccountsResponse{
		CustomerID: customerID,
		Accounts:   views,
	}

	return commons.SuccessResponse("accounts fetched successfully", response), nil
}

// parseOpeningBalance accepts an empty deposit as zero; anything else follows
// the same fixed-point rules as posting amounts.
func parseOpeningBalance(value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if balance.IsNegative() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !balance.Equal(balance.Truncate(2)) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return balance, nil
}
