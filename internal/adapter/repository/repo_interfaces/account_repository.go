package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/domain"
)

type AccountRepository interface {
	// Create inserts the account and, when the opening balance is positive,
	// the matching deposit record in one transaction.
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error)
}
