package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferCompleted is published after a transfer commits. Delivery is
// best-effort; a publish failure never fails the transfer.
type TransferCompleted struct {
	Reference     string          `json:"reference"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

type Publisher interface {
	Publish(event TransferCompleted) error
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(TransferCompleted) error { return nil }
