// Package memory provides a map-backed implementation of the ledger store
// ports. It backs the test suite and local runs without Postgres. A single
// mutex guards all state, so every unit of work is trivially serializable;
// writes are staged and only become visible when the unit of work commits.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
)

type Store struct {
	mu                sync.RWMutex
	accounts          map[string]domain.Account
	byNumber          map[int64]string
	byName            map[string]string
	entries           []domain.Transaction
	nextAccountNumber int64
	nextTransactionID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		byNumber: make(map[int64]string),
		byName:   make(map[string]string),
	}
}

var (
	_ portsrepo.AccountRepository     = (*Store)(nil)
	_ portsrepo.TransactionRepository = (*Store)(nil)
	_ portsrepo.TransactionStore      = (*Store)(nil)
)

// NewRepositoryProvider builds a repository set backed by a single store.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		TransactionRepo: s,
		Store:           s,
	}
}

// SaveAccount inserts a new account and assigns the next account number.
func (s *Store) SaveAccount(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	if _, exists := s.byName[account.Name]; exists {
		return fmt.Errorf("%w: account name %q already taken", apperrors.ErrDuplicate, account.Name)
	}

	s.nextAccountNumber++
	account.AccountNumber = s.nextAccountNumber

	s.accounts[account.AccountID] = *account
	s.byNumber[account.AccountNumber] = account.AccountID
	s.byName[account.Name] = account.AccountID
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

// FindAccountByNumber retrieves an account by its system-assigned number.
func (s *Store) FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNumber[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	acc := s.accounts[id]
	return &acc, nil
}

// ListAccounts returns accounts ordered by name.
func (s *Store) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		all = append(all, acc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if offset >= len(all) {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// FindTransactionsByAccountID returns entries touching the account, newest first.
func (s *Store) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Transaction{}
	for _, t := range s.entries {
		if t.Debits(accountID) || t.Credits(accountID) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].TransactionID > result[j].TransactionID
	})
	return result, nil
}

// InTx runs fn under the store's write lock. Writes made through the LedgerTx
// are staged and applied only if fn returns nil; an error discards them all.
func (s *Store) InTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memLedgerTx{store: s, staged: make(map[string]domain.Account)}
	if err := fn(tx); err != nil {
		return err
	}

	tx.commit()
	return nil
}

// memLedgerTx stages writes against the store until commit.
type memLedgerTx struct {
	store   *Store
	staged  map[string]domain.Account // accounts with pending balance writes
	entries []domain.Transaction
}

var _ portsrepo.LedgerTx = (*memLedgerTx)(nil)

func (tx *memLedgerTx) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		acc, ok := tx.store.accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: could not find or lock account %s", apperrors.ErrNotFound, id)
		}
		result[id] = acc
	}
	return result, nil
}

func (tx *memLedgerTx) AppendTransaction(ctx context.Context, txn *domain.Transaction) error {
	txn.TransactionID = tx.store.nextTransactionID + int64(len(tx.entries)) + 1
	tx.entries = append(tx.entries, *txn)
	return nil
}

func (tx *memLedgerTx) ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal, versions map[string]int64, now time.Time) error {
	for accountID, delta := range changes {
		acc, ok := tx.store.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
		}
		if acc.Version != versions[accountID] {
			return fmt.Errorf("%w: account %s changed since it was read", apperrors.ErrConcurrentModification, accountID)
		}
		acc.Balance = acc.Balance.Add(delta)
		acc.Version++
		acc.LastUpdatedAt = now
		tx.staged[accountID] = acc
	}
	return nil
}

func (tx *memLedgerTx) commit() {
	for id, acc := range tx.staged {
		tx.store.accounts[id] = acc
	}
	tx.store.entries = append(tx.store.entries, tx.entries...)
	tx.store.nextTransactionID += int64(len(tx.entries))
}
