package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"customerId":     account.CustomerID,
		"openingBalance": account.Balance,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin create account transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertAccount = `
INSERT INTO accounts (customer_id, balance)
VALUES ($1, $2)
RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(ctx, insertAccount, account.CustomerID, account.Balance).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"customerId": account.CustomerID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	if account.Balance.IsPositive() {
		// Opening balance is recorded as a deposit so statements replay to
		// the current balance.
		const insertRecord = `
INSERT INTO transfers (kind, to_account_id, amount, reference)
VALUES ($1, $2, $3, $4)`

		if _, err = tx.ExecContext(ctx, insertRecord, domain.RecordKindDeposit, account.ID, account.Balance, newReference()); err != nil {
			logger.Error("account repository opening deposit record failed", err, logger.Fields{
				"accountId": account.ID,
			})
			return domain.Account{}, fmt.Errorf("record opening deposit: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Account{}, fmt.Errorf("commit create account transaction: %w", err)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId":  account.ID,
		"customerId": account.CustomerID,
	})

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
SELECT id, customer_id, balance, created_at, updated_at
FROM accounts
WHERE id = $1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.CustomerID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": id,
			})
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error) {
	const query = `
SELECT id, customer_id, balance, created_at, updated_at
FROM accounts
WHERE customer_id = $1
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		logger.Error("account repository list by customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return nil, fmt.Errorf("list accounts for customer: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.CustomerID,
			&account.Balance,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}
