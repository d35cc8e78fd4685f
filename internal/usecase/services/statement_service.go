package services

import (
	"context"
	"errors"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/shopspring/decimal"
)

const directionCredit = "CREDIT"
const directionDebit = "DEBIT"

// StatementService is a pure projection over the append-only transfer log
// and current account state. It never mutates.
type StatementService struct {
	accountRepo  repo_interfaces.AccountRepository
	transferRepo repo_interfaces.TransferRepository
}

func NewStatementService(
	accountRepo repo_interfaces.AccountRepository,
	transferRepo repo_interfaces.TransferRepository,
) *StatementService {
	return &StatementService{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
	}
}

func (s *StatementService) GetHistory(ctx context.Context, accountID int64) (commons.Response[models.HistoryResponse], error) {
	logger.Info("statement service get history request", logger.Fields{
		"accountId": accountID,
	})

	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.HistoryResponse]("Account not found", err.Error()), err
		}
		logger.Error("statement service get history account lookup failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.HistoryResponse]("failed to get history", "Unable to fetch history right now"), err
	}

	records, err := s.transferRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		logger.Error("statement service get history failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.HistoryResponse]("failed to get history", "Unable to fetch history right now"), err
	}

	views := make([]models.TransferRecordView, 0, len(records))
	for _, record := range records {
		views = append(views, models.TransferRecordView{
			RecordID:      record.ID,
			Kind:          string(record.Kind),
			FromAccountID: record.FromAccountID,
			ToAccountID:   record.ToAccountID,
			Amount:        record.Amount.StringFixed(2),
			Reference:     record.Reference,
			Timestamp:     record.CreatedAt.Format(time.RFC3339),
		})
	}

	response := models.HistoryResponse{
		AccountID: accountID,
		Records:   views,
	}

	return commons.SuccessResponse("history fetched successfully", response), nil
}

func (s *StatementService) GetStatement(ctx context.Context, accountID int64) (commons.Response[models.StatementResponse], error) {
	logger.Info("statement service get statement request", logger.Fields{
		"accountId": accountID,
	})

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.StatementResponse]("Account not found", err.Error()), err
		}
		logger.Error("statement service get statement account lookup failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.StatementResponse]("failed to get statement", "Unable to fetch statement right now"), err
	}

	records, err := s.transferRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		logger.Error("statement service get statement failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.StatementResponse]("failed to get statement", "Unable to fetch statement right now"), err
	}

	// Every balance mutation is recorded, including the opening deposit, so
	// replaying from zero lands on the balance the account holds now.
	running := decimal.Zero
	entries := make([]models.StatementEntry, 0, len(records))
	for _, record := range records {
		direction := directionCredit
		var counterparty *int64
		if record.FromAccountID != nil && *record.FromAccountID == accountID {
			direction = directionDebit
			running = running.Sub(record.Amount)
			counterparty = record.ToAccountID
		} else {
			running = running.Add(record.Amount)
			counterparty = record.FromAccountID
		}

		entries = append(entries, models.StatementEntry{
			RecordID:              record.ID,
			Kind:                  string(record.Kind),
			Direction:             direction,
			CounterpartyAccountID: counterparty,
			Amount:                record.Amount.StringFixed(2),
			RunningBalance:        running.StringFixed(2),
			Timestamp:             record.CreatedAt.Format(time.RFC3339),
		})
	}

	response := models.StatementResponse{
		AccountID: accountID,
		Balance:   account.Balance.StringFixed(2),
		Entries:   entries,
	}

	return commons.SuccessResponse("statement fetched successfully", response), nil
}
