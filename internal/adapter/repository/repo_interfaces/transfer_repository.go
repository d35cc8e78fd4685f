package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type TransferRepository interface {
	// ListByAccountID returns every record where the account is source or
	// destination, ordered by creation time then record id.
	ListByAccountID(ctx context.Context, accountID int64) ([]domain.TransferRecord, error)
}
