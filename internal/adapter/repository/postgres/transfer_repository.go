package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) ListByAccountID(ctx context.Context, accountID int64) ([]domain.TransferRecord, error) {
	logger.Info("transfer repository list by account", logger.Fields{
		"accountId": accountID,
	})

	const query = `
SELECT id, kind, from_account_id, to_account_id, amount, reference, created_at
FROM transfers
WHERE from_account_id = $1
   OR to_account_id = $1
ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("transfer repository list by account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transfers for account: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TransferRecord, 0)
	for rows.Next() {
		var (
			record domain.TransferRecord
			from   sql.NullInt64
			to     sql.NullInt64
		)
		if err := rows.Scan(
			&record.ID,
			&record.Kind,
			&from,
			&to,
			&record.Amount,
			&record.Reference,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		if from.Valid {
			value := from.Int64
			record.FromAccountID = &value
		}
		if to.Valid {
			value := to.Int64
			record.ToAccountID = &value
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer rows: %w", err)
	}

	return records, nil
}
