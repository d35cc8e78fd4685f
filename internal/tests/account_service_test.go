package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/memory"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/usecase/services"
)

func TestAccountServiceCreateAccountWithOpeningBalance(t *testing.T) {
	store := memory.NewStore()
	customer, err := store.Customers().Create(context.Background(), domain.Customer{Name: "Grace Hopper"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	svc := services.NewAccountService(store.Accounts(), store.Customers())
	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID:     customer.ID,
		InitialDeposit: "250.00",
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if resp.Data.Balance != "250.00" {
		t.Fatalf("expected opening balance 250.00, got %s", resp.Data.Balance)
	}

	// The opening balance must be visible in the transfer log.
	records, err := store.ListByAccountID(context.Background(), resp.Data.AccountID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one opening deposit record, got %d", len(records))
	}
	if records[0].Kind != domain.RecordKindDeposit {
		t.Fatalf("expected DEPOSIT record, got %s", records[0].Kind)
	}
}

func TestAccountServiceCreateAccountDefaultsToZeroBalance(t *testing.T) {
	store := memory.NewStore()
	customer, _ := store.Customers().Create(context.Background(), domain.Customer{Name: "Grace Hopper"})

	svc := services.NewAccountService(store.Accounts(), store.Customers())
	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID: customer.ID,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if resp.Data.Balance != "0.00" {
		t.Fatalf("expected zero balance, got %s", resp.Data.Balance)
	}

	records, _ := store.ListByAccountID(context.Background(), resp.Data.AccountID)
	if len(records) != 0 {
		t.Fatalf("zero opening balance must not write a record, got %d", len(records))
	}
}

func TestAccountServiceCreateAccountRejectsUnknownCustomer(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAccountService(store.Accounts(), store.Customers())

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID: 42,
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAccountServiceCreateAccountRejectsOverPrecisionDeposit(t *testing.T) {
	store := memory.NewStore()
	customer, _ := store.Customers().Create(context.Background(), domain.Customer{Name: "Grace Hopper"})

	svc := services.NewAccountService(store.Accounts(), store.Customers())
	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID:     customer.ID,
		InitialDeposit: "10.005",
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAccountServiceGetBalanceUnknownAccount(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAccountService(store.Accounts(), store.Customers())

	_, err := svc.GetBalance(context.Background(), 99)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAccountServiceListAccounts(t *testing.T) {
	store := memory.NewStore()
	customer, _ := store.Customers().Create(context.Background(), domain.Customer{Name: "Grace Hopper"})
	svc := services.NewAccountService(store.Accounts(), store.Customers())

	for _, deposit := range []string{"10.00", "20.00"} {
		if _, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
			CustomerID:     customer.ID,
			InitialDeposit: deposit,
		}); err != nil {
			t.Fatalf("create account: %v", err)
		}
	}

	resp, err := svc.ListAccounts(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(resp.Data.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Data.Accounts))
	}
	if resp.Data.Accounts[0].Balance != "10.00" || resp.Data.Accounts[1].Balance != "20.00" {
		t.Fatalf("unexpected balances: %+v", resp.Data.Accounts)
	}
}

func TestAccountServiceListAccountsUnknownCustomer(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAccountService(store.Accounts(), store.Customers())

	_, err := svc.ListAccounts(context.Background(), 7)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
