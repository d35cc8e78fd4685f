package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerStore hands out scoped transactions. It is the only component allowed
// to take exclusive row locks on accounts.
type LedgerStore interface {
	Begin(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is one atomic unit of work against the ledger. LockAccounts always
// acquires locks in ascending account id order regardless of argument order,
// so two transfers over the same pair cannot deadlock. Ids missing from the
// returned map do not exist.
type LedgerTx interface {
	LockAccounts(ctx context.Context, ids ...int64) (map[int64]domain.Account, error)
	UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error
	AppendRecord(ctx context.Context, record domain.TransferRecord) (domain.TransferRecord, error)
	Commit() error
	Rollback() error
}
