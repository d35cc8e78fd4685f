package memory

import (
	"context"
	"testing"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

func seedAccount(t *testing.T, store *Store, balance string) int64 {
	t.Helper()

	customer, err := store.Customers().Create(context.Background(), domain.Customer{Name: "test"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	account, err := store.Accounts().Create(context.Background(), domain.Account{
		CustomerID: customer.ID,
		Balance:    decimal.RequireFromString(balance),
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account.ID
}

func TestLedgerTxCommitAppliesBalancesAndRecords(t *testing.T) {
	store := NewStore()
	id := seedAccount(t, store, "0")

	tx, err := store.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	locked, err := tx.LockAccounts(context.Background(), id)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if _, ok := locked[id]; !ok {
		t.Fatalf("account %d not locked", id)
	}

	if err := tx.UpdateBalance(context.Background(), id, decimal.RequireFromString("12.34")); err != nil {
		t.Fatalf("update balance: %v", err)
	}
	if _, err := tx.AppendRecord(context.Background(), domain.TransferRecord{
		Kind:        domain.RecordKindDeposit,
		ToAccountID: &id,
		Amount:      decimal.RequireFromString("12.34"),
	}); err != nil {
		t.Fatalf("append record: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	account, _ := store.Accounts().GetByID(context.Background(), id)
	if got := account.Balance.StringFixed(2); got != "12.34" {
		t.Fatalf("expected balance 12.34, got %s", got)
	}
	records, _ := store.ListByAccountID(context.Background(), id)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestLedgerTxRollbackDiscardsChanges(t *testing.T) {
	store := NewStore()
	id := seedAccount(t, store, "50.00")

	tx, _ := store.Begin(context.Background())
	if _, err := tx.LockAccounts(context.Background(), id); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := tx.UpdateBalance(context.Background(), id, decimal.Zero); err != nil {
		t.Fatalf("update balance: %v", err)
	}
	if _, err := tx.AppendRecord(context.Background(), domain.TransferRecord{
		Kind:          domain.RecordKindWithdrawal,
		FromAccountID: &id,
		Amount:        decimal.RequireFromString("50.00"),
	}); err != nil {
		t.Fatalf("append record: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	account, _ := store.Accounts().GetByID(context.Background(), id)
	if got := account.Balance.StringFixed(2); got != "50.00" {
		t.Fatalf("rolled back tx must not change balance, got %s", got)
	}
	records, _ := store.ListByAccountID(context.Background(), id)
	if len(records) != 1 {
		t.Fatalf("rolled back record must not persist, got %d records", len(records))
	}
}

func TestLedgerTxUpdateBalanceRequiresLock(t *testing.T) {
	store := NewStore()
	id := seedAccount(t, store, "10.00")

	tx, _ := store.Begin(context.Background())
	defer func() { _ = tx.Rollback() }()

	if err := tx.UpdateBalance(context.Background(), id, decimal.Zero); err == nil {
		t.Fatal("expected error updating an unlocked account")
	}
}

func TestLedgerTxLockAccountsSkipsMissingRows(t *testing.T) {
	store := NewStore()
	id := seedAccount(t, store, "10.00")

	tx, _ := store.Begin(context.Background())
	defer func() { _ = tx.Rollback() }()

	locked, err := tx.LockAccounts(context.Background(), id, 999)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if len(locked) != 1 {
		t.Fatalf("expected a single locked row, got %d", len(locked))
	}
	if _, ok := locked[999]; ok {
		t.Fatal("missing account must not appear locked")
	}
}
