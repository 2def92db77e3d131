package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
	"github.com/psanthosh/simple_bank_system/internal/repositories/database/memory"
)

func newAccount(t *testing.T, store *memory.Store, name string, balance int64) domain.Account {
	t.Helper()
	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      name,
		Balance:   decimal.NewFromInt(balance),
		Version:   1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	require.NoError(t, store.SaveAccount(context.Background(), &account))
	return account
}

func TestInTx_CommitsAllWrites(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	alice := newAccount(t, store, "Alice", 100)
	bob := newAccount(t, store, "Bob", 0)

	err := store.InTx(ctx, func(tx portsrepo.LedgerTx) error {
		locked, err := tx.LockAccounts(ctx, []string{alice.AccountID, bob.AccountID})
		if err != nil {
			return err
		}
		txn := domain.Transaction{
			DebitAccountID:  &bob.AccountID,
			CreditAccountID: &alice.AccountID,
			Amount:          decimal.NewFromInt(40),
			CreatedAt:       time.Now().UTC(),
		}
		if err := tx.AppendTransaction(ctx, &txn); err != nil {
			return err
		}
		return tx.ApplyBalanceChanges(ctx,
			map[string]decimal.Decimal{
				alice.AccountID: decimal.NewFromInt(-40),
				bob.AccountID:   decimal.NewFromInt(40),
			},
			map[string]int64{
				alice.AccountID: locked[alice.AccountID].Version,
				bob.AccountID:   locked[bob.AccountID].Version,
			},
			time.Now().UTC())
	})
	require.NoError(t, err)

	gotAlice, err := store.FindAccountByID(ctx, alice.AccountID)
	require.NoError(t, err)
	assert.True(t, gotAlice.Balance.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, int64(2), gotAlice.Version)

	gotBob, err := store.FindAccountByID(ctx, bob.AccountID)
	require.NoError(t, err)
	assert.True(t, gotBob.Balance.Equal(decimal.NewFromInt(40)))

	entries, err := store.FindTransactionsByAccountID(ctx, alice.AccountID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].TransactionID)
}

func TestInTx_ErrorDiscardsEverything(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	alice := newAccount(t, store, "Alice", 100)

	boom := errors.New("boom")
	err := store.InTx(ctx, func(tx portsrepo.LedgerTx) error {
		txn := domain.Transaction{
			DebitAccountID: &alice.AccountID,
			Amount:         decimal.NewFromInt(10),
			CreatedAt:      time.Now().UTC(),
		}
		if err := tx.AppendTransaction(ctx, &txn); err != nil {
			return err
		}
		if err := tx.ApplyBalanceChanges(ctx,
			map[string]decimal.Decimal{alice.AccountID: decimal.NewFromInt(10)},
			map[string]int64{alice.AccountID: alice.Version},
			time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.FindAccountByID(ctx, alice.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(1), got.Version)

	entries, err := store.FindTransactionsByAccountID(ctx, alice.AccountID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The discarded entry must not burn a sequence number.
	err = store.InTx(ctx, func(tx portsrepo.LedgerTx) error {
		txn := domain.Transaction{
			DebitAccountID: &alice.AccountID,
			Amount:         decimal.NewFromInt(5),
			CreatedAt:      time.Now().UTC(),
		}
		return tx.AppendTransaction(ctx, &txn)
	})
	require.NoError(t, err)
	entries, err = store.FindTransactionsByAccountID(ctx, alice.AccountID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].TransactionID)
}

func TestApplyBalanceChanges_StaleVersion(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	alice := newAccount(t, store, "Alice", 100)

	err := store.InTx(ctx, func(tx portsrepo.LedgerTx) error {
		return tx.ApplyBalanceChanges(ctx,
			map[string]decimal.Decimal{alice.AccountID: decimal.NewFromInt(10)},
			map[string]int64{alice.AccountID: alice.Version + 1},
			time.Now().UTC())
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)

	got, err := store.FindAccountByID(ctx, alice.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
}

func TestLockAccounts_MissingAccount(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	newAccount(t, store, "Alice", 0)

	err := store.InTx(ctx, func(tx portsrepo.LedgerTx) error {
		_, err := tx.LockAccounts(ctx, []string{"missing"})
		return err
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveAccount_DuplicateName(t *testing.T) {
	store := memory.NewStore()
	newAccount(t, store, "Alice", 0)

	dup := domain.Account{AccountID: uuid.NewString(), Name: "Alice", Version: 1}
	err := store.SaveAccount(context.Background(), &dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
