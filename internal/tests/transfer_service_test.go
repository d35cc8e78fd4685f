package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/memory"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/usecase/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func newLedgerFixture(t *testing.T, openingBalances ...string) (*memory.Store, []int64) {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()

	customer, err := store.Customers().Create(ctx, domain.Customer{Name: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	ids := make([]int64, 0, len(openingBalances))
	for _, balance := range openingBalances {
		account, err := store.Accounts().Create(ctx, domain.Account{
			CustomerID: customer.ID,
			Balance:    decimal.RequireFromString(balance),
		})
		if err != nil {
			t.Fatalf("create account: %v", err)
		}
		ids = append(ids, account.ID)
	}

	return store, ids
}

func TestTransferFundsMovesBalanceAtomically(t *testing.T) {
	store, ids := newLedgerFixture(t, "100.00", "50.00")
	svc := services.NewTransferService(store, nil)

	resp, err := svc.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: ids[0],
		ToAccountID:   ids[1],
		Amount:        "30.00",
	})
	if err != nil {
		t.Fatalf("transfer funds: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success response, got %+v", resp)
	}
	if resp.Data.Amount != "30.00" {
		t.Fatalf("expected amount 30.00, got %s", resp.Data.Amount)
	}
	if resp.Data.Reference == "" {
		t.Fatal("expected a transfer reference")
	}

	from, _ := store.Accounts().GetByID(context.Background(), ids[0])
	to, _ := store.Accounts().GetByID(context.Background(), ids[1])
	if got := from.Balance.StringFixed(2); got != "70.00" {
		t.Fatalf("expected source balance 70.00, got %s", got)
	}
	if got := to.Balance.StringFixed(2); got != "80.00" {
		t.Fatalf("expected destination balance 80.00, got %s", got)
	}
}

func TestTransferFundsRejectsInsufficientBalance(t *testing.T) {
	store, ids := newLedgerFixture(t, "10.00", "0")
	svc := services.NewTransferService(store, nil)

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: ids[0],
		ToAccountID:   ids[1],
		Amount:        "10.01",
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	from, _ := store.Accounts().GetByID(context.Background(), ids[0])
	if got := from.Balance.StringFixed(2); got != "10.00" {
		t.Fatalf("rejected transfer must not move funds, balance %s", got)
	}
}

func TestTransferFundsAllowsExactBalance(t *testing.T) {
	store, ids := newLedgerFixture(t, "10.00", "0")
	svc := services.NewTransferService(store, nil)

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: ids[0],
		ToAccountID:   ids[1],
		Amount:        "10.00",
	})
	if err != nil {
		t.Fatalf("transfer of the full balance should succeed: %v", err)
	}

	from, _ := store.Accounts().GetByID(context.Background(), ids[0])
	if got := from.Balance.StringFixed(2); got != "0.00" {
		t.Fatalf("expected zero balance, got %s", got)
	}
}

func TestTransferFundsRejectsSelfTransfer(t *testing.T) {
	store, ids := newLedgerFixture(t, "100.00")
	svc := services.NewTransferService(store, nil)

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: ids[0],
		ToAccountID:   ids[0],
		Amount:        "5.00",
	})
	if !errors.Is(err, domain.ErrSelfTransfer) {
		t.Fatalf("expected ErrSelfTransfer, got %v", err)
	}
}

func TestTransferFundsRejectsOverPrecisionAmount(t *testing.T) {
	store, ids := newLedgerFixture(t, "100.00", "0")
	svc := services.NewTransferService(store, nil)

	for _, amount := range []string{"5.001", "0", "-5.00"} {
		_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
			FromAccountID: ids[0],
			ToAccountID:   ids[1],
			Amount:        amount,
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %q: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestTransferFundsRejectsUnknownAccount(t *testing.T) {
	store, ids := newLedgerFixture(t, "100.00")
	svc := services.NewTransferService(store, nil)

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: ids[0],
		ToAccountID:   9999,
		Amount:        "5.00",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDepositFundsRejectsNegativeAmount(t *testing.T) {
	store, ids := newLedgerFixture(t, "25.00")
	svc := services.NewTransferService(store, nil)

	_, err := svc.DepositFunds(context.Background(), models.DepositFundsRequest{
		AccountID: ids[0],
		Amount:    "-5.00",
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	records, _ := store.ListByAccountID(context.Background(), ids[0])
	if len(records) != 1 {
		t.Fatalf("rejected deposit must not append a record, got %d", len(records))
	}
}

func TestDepositFundsIncreasesBalance(t *testing.T) {
	store, ids := newLedgerFixture(t, "25.00")
	svc := services.NewTransferService(store, nil)

	resp, err := svc.DepositFunds(context.Background(), models.DepositFundsRequest{
		AccountID: ids[0],
		Amount:    "75.00",
	})
	if err != nil {
		t.Fatalf("deposit funds: %v", err)
	}
	if resp.Data.Balance != "100.00" {
		t.Fatalf("expected balance 100.00, got %s", resp.Data.Balance)
	}
}

func TestWithdrawFundsDecreasesBalance(t *testing.T) {
	store, ids := newLedgerFixture(t, "25.00")
	svc := services.NewTransferService(store, nil)

	resp, err := svc.WithdrawFunds(context.Background(), models.WithdrawFundsRequest{
		AccountID: ids[0],
		Amount:    "25.00",
	})
	if err != nil {
		t.Fatalf("withdraw funds: %v", err)
	}
	if resp.Data.Balance != "0.00" {
		t.Fatalf("expected balance 0.00, got %s", resp.Data.Balance)
	}

	_, err = svc.WithdrawFunds(context.Background(), models.WithdrawFundsRequest{
		AccountID: ids[0],
		Amount:    "0.01",
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance on empty account, got %v", err)
	}
}

func TestConcurrentTransfersConserveTotalBalance(t *testing.T) {
	store, ids := newLedgerFixture(t, "1000.00", "1000.00")
	svc := services.NewTransferService(store, nil)

	// Opposing directions over the same pair exercise the ascending-id lock
	// order; a deadlock here hangs the test.
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
				FromAccountID: ids[0],
				ToAccountID:   ids[1],
				Amount:        "1.00",
			})
			return err
		})
		g.Go(func() error {
			_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
				FromAccountID: ids[1],
				ToAccountID:   ids[0],
				Amount:        "1.00",
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent transfers: %v", err)
	}

	a, _ := store.Accounts().GetByID(context.Background(), ids[0])
	b, _ := store.Accounts().GetByID(context.Background(), ids[1])
	total := a.Balance.Add(b.Balance)
	if got := total.StringFixed(2); got != "2000.00" {
		t.Fatalf("total balance must be conserved, got %s", got)
	}
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	store, ids := newLedgerFixture(t, "10.00")
	svc := services.NewTransferService(store, nil)

	var g errgroup.Group
	failures := make(chan error, 20)
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := svc.WithdrawFunds(context.Background(), models.WithdrawFundsRequest{
				AccountID: ids[0],
				Amount:    "1.00",
			})
			if err != nil {
				failures <- err
			}
			return nil
		})
	}
	_ = g.Wait()
	close(failures)

	rejected := 0
	for err := range failures {
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("unexpected withdrawal error: %v", err)
		}
		rejected++
	}
	if rejected != 10 {
		t.Fatalf("expected 10 rejected withdrawals, got %d", rejected)
	}

	account, _ := store.Accounts().GetByID(context.Background(), ids[0])
	if got := account.Balance.StringFixed(2); got != "0.00" {
		t.Fatalf("expected balance 0.00, got %s", got)
	}
}

// conflictingLedgerStore fails the first N commits with a storage conflict to
// exercise the engine's retry path.
type conflictingLedgerStore struct {
	inner     repo_interfaces.LedgerStore
	conflicts int
}

func (s *conflictingLedgerStore) Begin(ctx context.Context) (repo_interfaces.LedgerTx, error) {
	tx, err := s.inner.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &conflictingLedgerTx{LedgerTx: tx, store: s}, nil
}

type conflictingLedgerTx struct {
	repo_interfaces.LedgerTx
	store *conflictingLedgerStore
}

func (t *conflictingLedgerTx) Commit() error {
	if t.store.conflicts > 0 {
		t.store.conflicts--
		_ = t.LedgerTx.Rollback()
		return fmt.Errorf("commit ledger transaction: %w", domain.ErrConflict)
	}
	return t.LedgerTx.Commit()
}

func TestTransferFundsRetriesOnCommitConflict(t *testing.T) {
	store, ids := newLedgerFixture(t, "100.00", "0")
	conflicted := &conflictingLedgerStore{inner: store, conflicts: 2}
	svc := services.NewTransferService(conflicted, nil)

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: ids[0],
		ToAccountID:   ids[1],
		Amount:        "40.00",
	})
	if err != nil {
		t.Fatalf("transfer should succeed after retries: %v", err)
	}

	from, _ := store.Accounts().GetByID(context.Background(), ids[0])
	if got := from.Balance.StringFixed(2); got != "60.00" {
		t.Fatalf("expected balance 60.00 after exactly one applied transfer, got %s", got)
	}
}

func TestTransferFundsGivesUpAfterRepeatedConflicts(t *testing.T) {
	store, ids := newLedgerFixture(t, "100.00", "0")
	conflicted := &conflictingLedgerStore{inner: store, conflicts: 10}
	svc := services.NewTransferService(conflicted, nil)

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{
		FromAccountID: ids[0],
		ToAccountID:   ids[1],
		Amount:        "40.00",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict after exhausting retries, got %v", err)
	}

	from, _ := store.Accounts().GetByID(context.Background(), ids[0])
	if got := from.Balance.StringFixed(2); got != "100.00" {
		t.Fatalf("failed transfer must not move funds, balance %s", got)
	}
}
