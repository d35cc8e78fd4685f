package models

import (
	"errors"
	"strings"
)

type DepositFundsRequest struct {
	AccountID int64  `json:"accountId"`
	Amount    string `json:"amount"`
}

func (r DepositFundsRequest) Validate() error {
	var errs []string

	if r.AccountID <= 0 {
		errs = append(errs, "accountId must be a positive integer")
	}
	if err := validateAmountString(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type DepositFundsResponse struct {
	AccountID int64  `json:"accountId"`
	Amount    string `json:"amount"`
	Balance   string `json:"balance"`
	Reference string `json:"reference"`
}

type WithdrawFundsRequest struct {
	AccountID int64  `json:"accountId"`
	Amount    string `json:"amount"`
}

func (r WithdrawFundsRequest) Validate() error {
	var errs []string

	if r.AccountID <= 0 {
		errs = append(errs, "accountId must be a positive integer")
	}
	if err := validateAmountString(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type WithdrawFundsResponse struct {
	AccountID int64  `json:"accountId"`
	Amount    string `json:"amount"`
	Balance   string `json:"balance"`
	Reference string `json:"reference"`
}
