package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Begin(ctx context.Context) (repo_interfaces.LedgerTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger store begin tx failed", err, nil)
		return nil, fmt.Errorf("begin ledger transaction: %w", err)
	}

	return &ledgerTx{tx: tx}, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) LockAccounts(ctx context.Context, ids ...int64) (map[int64]domain.Account, error) {
	ordered := dedupeAscending(ids)

	// ORDER BY id inside FOR UPDATE fixes the lock acquisition order, so two
	// transfers over the same pair never deadlock whatever their direction.
	const query = `
SELECT id, customer_id, balance, created_at, updated_at
FROM accounts
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

	rows, err := t.tx.QueryContext(ctx, query, pq.Array(ordered))
	if err != nil {
		logger.Error("ledger store lock accounts failed", err, logger.Fields{
			"accountIds": ordered,
		})
		return nil, fmt.Errorf("lock accounts: %w", translateError(err))
	}
	defer rows.Close()

	locked := make(map[int64]domain.Account, len(ordered))
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.CustomerID,
			&account.Balance,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan locked account: %w", err)
		}
		locked[account.ID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locked accounts: %w", translateError(err))
	}

	return locked, nil
}

func (t *ledgerTx) UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = $2,
    updated_at = NOW()
WHERE id = $1`

	result, err := t.tx.ExecContext(ctx, query, accountID, balance)
	if err != nil {
		logger.Error("ledger store update balance failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("update balance: %w", translateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (t *ledgerTx) AppendRecord(ctx context.Context, record domain.TransferRecord) (domain.TransferRecord, error) {
	if record.Reference == "" {
		record.Reference = newReference()
	}

	const query = `
INSERT INTO transfers (kind, from_account_id, to_account_id, amount, reference)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	if err := t.tx.QueryRowContext(
		ctx,
		query,
		record.Kind,
		nullableID(record.FromAccountID),
		nullableID(record.ToAccountID),
		record.Amount,
		record.Reference,
	).Scan(&record.ID, &record.CreatedAt); err != nil {
		logger.Error("ledger store append record failed", err, logger.Fields{
			"kind":      record.Kind,
			"reference": record.Reference,
		})
		return domain.TransferRecord{}, fmt.Errorf("append transfer record: %w", translateError(err))
	}

	return record, nil
}

func (t *ledgerTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		logger.Error("ledger store commit failed", err, nil)
		return fmt.Errorf("commit ledger transaction: %w", translateError(err))
	}
	return nil
}

func (t *ledgerTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback ledger transaction: %w", err)
	}
	return nil
}

// translateError maps Postgres serialization failures and deadlocks onto
// domain.ErrConflict so the engine can retry them.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "40001", "40P01":
			return domain.ErrConflict
		}
	}
	return err
}

func dedupeAscending(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	ordered := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	return ordered
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func newReference() string {
	return uuid.NewString()
}
