package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
)

type StatementService interface {
	GetHistory(ctx context.Context, accountID int64) (commons.Response[models.HistoryResponse], error)
	GetStatement(ctx context.Context, accountID int64) (commons.Response[models.StatementResponse], error)
}
