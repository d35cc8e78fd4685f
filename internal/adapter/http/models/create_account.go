package models

import (
	"errors"
	"strings"
)

type CreateAccountRequest struct {
	CustomerID     int64  `json:"customerId"`
	InitialDeposit string `json:"initialDeposit,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId must be a positive integer")
	}

	if deposit := strings.TrimSpace(r.InitialDeposit); deposit != "" {
		if strings.HasPrefix(deposit, "-") {
			errs = append(errs, "initialDeposit cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type CreateAccountResponse struct {
	AccountID  int64  `json:"accountId"`
	CustomerID int64  `json:"customerId"`
	Balance    string `json:"balance"`
	CreatedAt  string `json:"createdAt"`
}

type AccountView struct {
	AccountID  int64  `json:"accountId"`
	CustomerID int64  `json:"customerId"`
	Balance    string `json:"balance"`
	CreatedAt  string `json:"createdAt"`
}

type BalanceResponse struct {
	AccountID int64  `json:"accountId"`
	Balance   string `json:"balance"`
}

type ListAccountsResponse struct {
	CustomerID int64         `json:"customerId"`
	Accounts   []AccountView `json:"accounts"`
}
