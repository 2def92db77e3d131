package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository for ledger entries.
func NewTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure the repository satisfies both the read path and the unit of work.
var (
	_ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)
	_ portsrepo.TransactionStore      = (*PgxTransactionRepository)(nil)
)

// FindTransactionsByAccountID retrieves every entry where the account appears
// as either party, newest first.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, debit_account_id, credit_account_id, amount, remarks, created_at
		FROM transactions
		WHERE debit_account_id = $1 OR credit_account_id = $1
		ORDER BY created_at DESC, transaction_id DESC;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(
			&t.TransactionID,
			&t.DebitAccountID,
			&t.CreditAccountID,
			&t.Amount,
			&t.Remarks,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, err)
	}

	return transactions, nil
}

// InTx runs fn inside a serializable database transaction. Postgres
// concurrency failures surface as the engine's typed outcomes; the transaction
// is rolled back on any error so no partial write survives.
func (r *PgxTransactionRepository) InTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return mapPgError(err)
	}

	return r.Commit(ctx, tx)
}

// pgxLedgerTx is the unit-of-work view handed to the engine.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// LockAccounts fetches the given accounts with FOR UPDATE row locks held until
// the transaction ends.
func (l *pgxLedgerTx) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`

	rows, err := l.tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[acc.AccountID] = *acc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: could not find or lock accounts %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// AppendTransaction writes one ledger entry. The entry ID comes from the
// database sequence, keeping ordering monotonic across writers.
func (l *pgxLedgerTx) AppendTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (debit_account_id, credit_account_id, amount, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transaction_id;
	`

	err := l.tx.QueryRow(ctx, query,
		txn.DebitAccountID,
		txn.CreditAccountID,
		txn.Amount,
		txn.Remarks,
		txn.CreatedAt,
	).Scan(&txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// ApplyBalanceChanges adds each delta to the matching account's cached balance.
// Every update is conditioned on the version token still matching what was read
// under the row lock; zero rows affected means a concurrent writer got there
// first and the whole unit of work is aborted.
func (l *pgxLedgerTx) ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal, versions map[string]int64, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, version = version + 1, last_updated_at = $3
		WHERE account_id = $1 AND version = $4;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(changes))
	for accountID, delta := range changes {
		batch.Queue(query, accountID, delta, now, versions[accountID])
		accountIDs = append(accountIDs, accountID)
	}

	br := l.tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s changed since it was read", apperrors.ErrConcurrentModification, accountIDs[i])
			}
		}
	}

	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}

	return batchErr
}
