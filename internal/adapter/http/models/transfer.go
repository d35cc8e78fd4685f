package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromAccountID int64  `json:"fromAccountId"`
	ToAccountID   int64  `json:"toAccountId"`
	Amount        string `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.FromAccountID <= 0 {
		errs = append(errs, "fromAccountId must be a positive integer")
	}
	if r.ToAccountID <= 0 {
		errs = append(errs, "toAccountId must be a positive integer")
	}
	if err := validateAmountString(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	Reference     string `json:"reference"`
	FromAccountID int64  `json:"fromAccountId"`
	ToAccountID   int64  `json:"toAccountId"`
	Amount        string `json:"amount"`
	Timestamp     string `json:"timestamp"`
}

func validateAmountString(value string) error {
	amount := strings.TrimSpace(value)
	if amount == "" {
		return errors.New("amount is required")
	}
	if _, err := decimal.NewFromString(amount); err != nil {
		return errors.New("amount must be numeric")
	}
	return nil
}
