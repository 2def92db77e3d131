package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/core/domain"
)

// TransactionRepository defines the read path over the append-only ledger.
type TransactionRepository interface {
	// FindTransactionsByAccountID returns every entry where the account is either
	// the debit or the credit party, ordered by creation time descending
	// (transaction ID breaks ties). The result is a snapshot at call time.
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionStore is the unit of work the transaction engine commits through.
// InTx runs fn inside a serializable transaction: either every write made via
// the LedgerTx is committed, or none is.
type TransactionStore interface {
	InTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx exposes the writes available inside one unit of work.
type LedgerTx interface {
	// LockAccounts fetches the given accounts and holds them locked until the
	// unit of work ends. Returns apperrors.ErrNotFound (wrapped) if any account
	// is missing.
	LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// AppendTransaction writes one ledger entry and assigns its TransactionID.
	AppendTransaction(ctx context.Context, txn *domain.Transaction) error

	// ApplyBalanceChanges adds each delta to the matching account's cached
	// balance. Every write is conditioned on the account still carrying the
	// version recorded in versions; a mismatch aborts the unit of work with
	// apperrors.ErrConcurrentModification.
	ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal, versions map[string]int64, now time.Time) error
}
