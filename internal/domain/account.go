package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID         int64
	CustomerID int64
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
