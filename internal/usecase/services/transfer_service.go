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
	"github.com/api-sage/ledger-service/internal/events"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/shopspring/decimal"
)

// maxPostingAttempts bounds the retries on storage serialization conflicts.
// Business rejections (not found, insufficient balance) are never retried.
const maxPostingAttempts = 3

type TransferService struct {
	ledger    repo_interfaces.LedgerStore
	publisher events.Publisher
}

func NewTransferService(ledger repo_interfaces.LedgerStore, publisher events.Publisher) *TransferService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &TransferService{ledger: ledger, publisher: publisher}
}

func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	if req.FromAccountID == req.ToAccountID {
		err := domain.ErrSelfTransfer
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("Invalid amount", err.Error()), err
	}

	record, _, err := s.postWithRetry(ctx, posting{
		kind:   domain.RecordKindTransfer,
		fromID: &req.FromAccountID,
		toID:   &req.ToAccountID,
		amount: amount,
	})
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse](postingFailureMessage(err), err.Error()), err
	}

	if publishErr := s.publisher.Publish(events.TransferCompleted{
		Reference:     record.Reference,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
		OccurredAt:    record.CreatedAt,
	}); publishErr != nil {
		logger.Error("transfer service publish transfer completed failed", publishErr, logger.Fields{
			"reference": record.Reference,
		})
	}

	response := models.TransferResponse{
		Reference:     record.Reference,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount.StringFixed(2),
		Timestamp:     record.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"reference":     response.Reference,
		"fromAccountId": response.FromAccountID,
		"toAccountId":   response.ToAccountID,
		"amount":        response.Amount,
	})

	return commons.SuccessResponse("Transfer successful", response), nil
}

func (s *TransferService) DepositFunds(ctx context.Context, req models.DepositFundsRequest) (commons.Response[models.DepositFundsResponse], error) {
	logger.Info("transfer service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service deposit validation failed", err, nil)
		return commons.ErrorResponse[models.DepositFundsResponse]("validation failed", err.Error()), err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.DepositFundsResponse]("Invalid amount", err.Error()), err
	}

	record, balance, err := s.postWithRetry(ctx, posting{
		kind:   domain.RecordKindDeposit,
		toID:   &req.AccountID,
		amount: amount,
	})
	if err != nil {
		return commons.ErrorResponse[models.DepositFundsResponse](postingFailureMessage(err), err.Error()), err
	}

	response := models.DepositFundsResponse{
		AccountID: req.AccountID,
		Amount:    amount.StringFixed(2),
		Balance:   balance.StringFixed(2),
		Reference: record.Reference,
	}

	logger.Info("transfer service deposit success", logger.Fields{
		"accountId": response.AccountID,
		"amount":    response.Amount,
		"balance":   response.Balance,
	})

	return commons.SuccessResponse("Deposit successful", response), nil
}

func (s *TransferService) WithdrawFunds(ctx context.Context, req models.WithdrawFundsRequest) (commons.Response[models.WithdrawFundsResponse], error) {
	logger.Info("transfer service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service withdraw validation failed", err, nil)
		return commons.ErrorResponse[models.WithdrawFundsResponse]("validation failed", err.Error()), err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.WithdrawFundsResponse]("Invalid amount", err.Error()), err
	}

	record, balance, err := s.postWithRetry(ctx, posting{
		kind:   domain.RecordKindWithdrawal,
		fromID: &req.AccountID,
		amount: amount,
	})
	if err != nil {
		return commons.ErrorResponse[models.WithdrawFundsResponse](postingFailureMessage(err), err.Error()), err
	}

	response := models.WithdrawFundsResponse{
		AccountID: req.AccountID,
		Amount:    amount.StringFixed(2),
		Balance:   balance.StringFixed(2),
		Reference: record.Reference,
	}

	logger.Info("transfer service withdraw success", logger.Fields{
		"accountId": response.AccountID,
		"amount":    response.Amount,
		"balance":   response.Balance,
	})

	return commons.SuccessResponse("Withdrawal successful", response), nil
}

// posting describes one atomic balance movement. A transfer carries both
// sides; a deposit or withdrawal only the internal one.
type posting struct {
	kind   domain.RecordKind
	fromID *int64
	toID   *int64
	amount decimal.Decimal
}

func (s *TransferService) postWithRetry(ctx context.Context, p posting) (domain.TransferRecord, decimal.Decimal, error) {
	var (
		record  domain.TransferRecord
		balance decimal.Decimal
		err     error
	)
	for attempt := 1; ; attempt++ {
		record, balance, err = s.post(ctx, p)
		if err == nil || !errors.Is(err, domain.ErrConflict) || attempt == maxPostingAttempts {
			return record, balance, err
		}
		logger.Info("transfer service commit conflict, retrying with fresh locks", logger.Fields{
			"attempt": attempt,
			"kind":    p.kind,
		})
	}
}

// post runs one attempt as a single ledger transaction: lock rows in id
// order, validate against the locked state, mutate, append the record,
// commit. Any failure rolls the whole unit back.
func (s *TransferService) post(ctx context.Context, p posting) (domain.TransferRecord, decimal.Decimal, error) {
	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return domain.TransferRecord{}, decimal.Zero, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ids := make([]int64, 0, 2)
	if p.fromID != nil {
		ids = append(ids, *p.fromID)
	}
	if p.toID != nil {
		ids = append(ids, *p.toID)
	}

	locked, err := tx.LockAccounts(ctx, ids...)
	if err != nil {
		return domain.TransferRecord{}, decimal.Zero, err
	}
	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return domain.TransferRecord{}, decimal.Zero, domain.ErrRecordNotFound
		}
	}

	var lastBalance decimal.Decimal

	if p.fromID != nil {
		from := locked[*p.fromID]
		if from.Balance.LessThan(p.amount) {
			return domain.TransferRecord{}, decimal.Zero, domain.ErrInsufficientBalance
		}
		lastBalance = from.Balance.Sub(p.amount)
		if err := tx.UpdateBalance(ctx, from.ID, lastBalance); err != nil {
			return domain.TransferRecord{}, decimal.Zero, err
		}
	}

	if p.toID != nil {
		to := locked[*p.toID]
		lastBalance = to.Balance.Add(p.amount)
		if err := tx.UpdateBalance(ctx, to.ID, lastBalance); err != nil {
			return domain.TransferRecord{}, decimal.Zero, err
		}
	}

	record, err := tx.AppendRecord(ctx, domain.TransferRecord{
		Kind:          p.kind,
		FromAccountID: p.fromID,
		ToAccountID:   p.toID,
		Amount:        p.amount,
	})
	if err != nil {
		return domain.TransferRecord{}, decimal.Zero, err
	}

	if err := tx.Commit(); err != nil {
		return domain.TransferRecord{}, decimal.Zero, err
	}
	committed = true

	return record, lastBalance, nil
}

func postingFailureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return "Account not found"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "Insufficient balance"
	case errors.Is(err, domain.ErrConflict):
		return "Posting conflicted with a concurrent operation, please retry"
	default:
		return "failed to process posting"
	}
}

// parseAmount enforces the fixed-point currency contract: positive, numeric,
// at most two decimal places. Over-precision input is rejected, never
// silently rounded.
func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount, nil
}
