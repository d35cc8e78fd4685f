package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordKind string

const (
	RecordKindTransfer   RecordKind = "TRANSFER"
	RecordKindDeposit    RecordKind = "DEPOSIT"
	RecordKindWithdrawal RecordKind = "WITHDRAWAL"
)

// TransferRecord is one append-only ledger entry. Deposits and withdrawals
// leave the external side nil; transfers carry both account ids.
type TransferRecord struct {
	ID            int64
	Kind          RecordKind
	FromAccountID *int64
	ToAccountID   *int64
	Amount        decimal.Decimal
	Reference     string
	CreatedAt     time.Time
}
