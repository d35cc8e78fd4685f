// Package memory is an in-process ledger backend with the same locking
// contract as the postgres one: exclusive per-account locks taken in
// ascending id order. It backs the service tests and local development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountRow struct {
	mu      sync.Mutex
	account domain.Account
}

type Store struct {
	mu             sync.Mutex
	customers      map[int64]domain.Customer
	accounts       map[int64]*accountRow
	records        []domain.TransferRecord
	nextCustomerID int64
	nextAccountID  int64
	nextRecordID   int64
}

func NewStore() *Store {
	return &Store{
		customers: make(map[int64]domain.Customer),
		accounts:  make(map[int64]*accountRow),
	}
}

// Customers returns the customer repository view of the store.
func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

// Accounts returns the account repository view of the store.
func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCustomerID++
	customer.ID = s.nextCustomerID
	customer.CreatedAt = time.Now().UTC()
	s.customers[customer.ID] = customer

	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrRecordNotFound
	}
	return customer, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.customers[id]
	return ok, nil
}

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[account.CustomerID]; !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	now := time.Now().UTC()
	s.nextAccountID++
	account.ID = s.nextAccountID
	account.CreatedAt = now
	account.UpdatedAt = now
	s.accounts[account.ID] = &accountRow{account: account}

	if account.Balance.IsPositive() {
		// Opening balance is recorded as a deposit so statements replay to
		// the current balance.
		accountID := account.ID
		s.nextRecordID++
		s.records = append(s.records, domain.TransferRecord{
			ID:          s.nextRecordID,
			Kind:        domain.RecordKindDeposit,
			ToAccountID: &accountID,
			Amount:      account.Balance,
			Reference:   uuid.NewString(),
			CreatedAt:   now,
		})
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	row, ok := s.accounts[id]
	s.mu.Unlock()

	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	row.mu.Lock()
	defer row.mu.Unlock()
	return row.account, nil
}

func (r *AccountRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error) {
	s := r.store
	s.mu.Lock()
	rows := make([]*accountRow, 0, len(s.accounts))
	for _, row := range s.accounts {
		rows = append(rows, row)
	}
	s.mu.Unlock()

	accounts := make([]domain.Account, 0)
	for _, row := range rows {
		row.mu.Lock()
		account := row.account
		row.mu.Unlock()
		if account.CustomerID == customerID {
			accounts = append(accounts, account)
		}
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (s *Store) ListByAccountID(ctx context.Context, accountID int64) ([]domain.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.TransferRecord, 0)
	for _, record := range s.records {
		if (record.FromAccountID != nil && *record.FromAccountID == accountID) ||
			(record.ToAccountID != nil && *record.ToAccountID == accountID) {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *Store) Begin(ctx context.Context) (repo_interfaces.LedgerTx, error) {
	return &ledgerTx{
		store:    s,
		balances: make(map[int64]decimal.Decimal),
	}, nil
}

type ledgerTx struct {
	store    *Store
	locked   []*accountRow
	balances map[int64]decimal.Decimal
	pending  []domain.TransferRecord
	done     bool
}

func (t *ledgerTx) LockAccounts(ctx context.Context, ids ...int64) (map[int64]domain.Account, error) {
	if t.done {
		return nil, fmt.Errorf("ledger transaction already finished")
	}

	ordered := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	result := make(map[int64]domain.Account, len(ordered))
	for _, id := range ordered {
		t.store.mu.Lock()
		row, ok := t.store.accounts[id]
		t.store.mu.Unlock()
		if !ok {
			// Missing rows are simply absent; held locks are released when
			// the caller rolls back.
			continue
		}

		row.mu.Lock()
		t.locked = append(t.locked, row)
		result[id] = row.account
	}

	return result, nil
}

func (t *ledgerTx) UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	if t.done {
		return fmt.Errorf("ledger transaction already finished")
	}
	if !t.holdsLock(accountID) {
		return fmt.Errorf("account %d is not locked by this transaction", accountID)
	}
	if balance.IsNegative() {
		return fmt.Errorf("balance cannot be negative")
	}

	t.balances[accountID] = balance
	return nil
}

func (t *ledgerTx) AppendRecord(ctx context.Context, record domain.TransferRecord) (domain.TransferRecord, error) {
	if t.done {
		return domain.TransferRecord{}, fmt.Errorf("ledger transaction already finished")
	}
	if record.Reference == "" {
		record.Reference = uuid.NewString()
	}

	t.store.mu.Lock()
	t.store.nextRecordID++
	record.ID = t.store.nextRecordID
	t.store.mu.Unlock()

	record.CreatedAt = time.Now().UTC()
	t.pending = append(t.pending, record)
	return record, nil
}

func (t *ledgerTx) Commit() error {
	if t.done {
		return fmt.Errorf("ledger transaction already finished")
	}

	now := time.Now().UTC()
	for _, row := range t.locked {
		if balance, ok := t.balances[row.account.ID]; ok {
			row.account.Balance = balance
			row.account.UpdatedAt = now
		}
	}

	t.store.mu.Lock()
	t.store.records = append(t.store.records, t.pending...)
	t.store.mu.Unlock()

	t.release()
	return nil
}

func (t *ledgerTx) Rollback() error {
	if t.done {
		return nil
	}
	t.release()
	return nil
}

func (t *ledgerTx) holdsLock(accountID int64) bool {
	for _, row := range t.locked {
		if row.account.ID == accountID {
			return true
		}
	}
	return false
}

func (t *ledgerTx) release() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		t.locked[i].mu.Unlock()
	}
	t.locked = nil
	t.done = true
}

var _ repo_interfaces.LedgerStore = (*Store)(nil)
var _ repo_interfaces.TransferRepository = (*Store)(nil)
var _ repo_interfaces.CustomerRepository = (*CustomerRepository)(nil)
var _ repo_interfaces.AccountRepository = (*AccountRepository)(nil)
