package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
	portssvc "github.com/psanthosh/simple_bank_system/internal/core/ports/services"
	"github.com/psanthosh/simple_bank_system/internal/dto"
	"github.com/psanthosh/simple_bank_system/internal/middleware"
	"github.com/psanthosh/simple_bank_system/internal/platform/locking"
)

// transactionService executes ledger operations. Every operation follows the
// same pipeline: validate the request, take the per-account locks in sorted
// order, then append the ledger entry and apply the balance changes inside a
// single storage transaction.
type transactionService struct {
	accountRepo portsrepo.AccountRepository
	store       portsrepo.TransactionStore
	locks       *locking.KeyedMutex
	lockWait    time.Duration
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(accountRepo portsrepo.AccountRepository, store portsrepo.TransactionStore, locks *locking.KeyedMutex, lockWait time.Duration) portssvc.TransactionSvcFacade {
	return &transactionService{
		accountRepo: accountRepo,
		store:       store,
		locks:       locks,
		lockWait:    lockWait,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// Execute validates and commits a single ledger operation. On success the
// returned transaction carries the assigned ledger sequence number.
func (s *transactionService) Execute(ctx context.Context, req dto.TransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}

	accountIDs, err := s.involvedAccountIDs(req)
	if err != nil {
		return nil, err
	}

	// Resolve every account up front so an unknown ID fails before any
	// locks are taken.
	for _, id := range accountIDs {
		if _, err := s.accountRepo.FindAccountByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidAccount, id)
			}
			return nil, fmt.Errorf("failed to resolve account %s: %w", id, err)
		}
	}

	if req.Type == domain.Transfer && req.DebitAccountID == req.CreditAccountID {
		return nil, apperrors.ErrSameAccount
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	release, err := s.locks.Acquire(lockCtx, accountIDs...)
	if err != nil {
		logger.Warn("could not acquire account locks", slog.Any("account_ids", accountIDs), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBusy, err)
	}
	defer release()

	now := time.Now().UTC()
	txn := &domain.Transaction{
		DebitAccountID:  optionalID(req.DebitAccountID),
		CreditAccountID: optionalID(req.CreditAccountID),
		Amount:          req.Amount,
		Remarks:         req.Remarks,
		CreatedAt:       now,
	}

	err = s.store.InTx(ctx, func(tx portsrepo.LedgerTx) error {
		locked, err := tx.LockAccounts(ctx, accountIDs)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %v", apperrors.ErrInvalidAccount, err)
			}
			return err
		}

		// Sufficiency is checked against the locked balance, not the one
		// read during resolution, so a concurrent spend cannot slip past.
		if req.CreditAccountID != "" {
			payer := locked[req.CreditAccountID]
			if payer.Balance.LessThan(req.Amount) {
				return fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientBalance, payer.Balance.String(), req.Amount.String())
			}
		}

		if err := tx.AppendTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		changes := make(map[string]decimal.Decimal, len(accountIDs))
		versions := make(map[string]int64, len(accountIDs))
		if req.DebitAccountID != "" {
			changes[req.DebitAccountID] = req.Amount
		}
		if req.CreditAccountID != "" {
			changes[req.CreditAccountID] = req.Amount.Neg()
		}
		for id, acc := range locked {
			versions[id] = acc.Version
		}

		if err := tx.ApplyBalanceChanges(ctx, changes, versions, now); err != nil {
			return fmt.Errorf("failed to apply balance changes: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Warn("transaction rejected", slog.String("type", string(req.Type)), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("transaction committed",
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()),
	)
	return txn, nil
}

// involvedAccountIDs checks that the request names the accounts its type
// requires and returns their IDs sorted, deduplicated.
func (s *transactionService) involvedAccountIDs(req dto.TransactionRequest) ([]string, error) {
	var ids []string
	switch req.Type {
	case domain.Deposit:
		if req.DebitAccountID == "" {
			return nil, fmt.Errorf("%w: deposit requires a receiving account", apperrors.ErrInvalidAccount)
		}
		ids = []string{req.DebitAccountID}
	case domain.Withdraw:
		if req.CreditAccountID == "" {
			return nil, fmt.Errorf("%w: withdrawal requires a paying account", apperrors.ErrInvalidAccount)
		}
		ids = []string{req.CreditAccountID}
	case domain.Transfer:
		if req.DebitAccountID == "" || req.CreditAccountID == "" {
			return nil, fmt.Errorf("%w: transfer requires both accounts", apperrors.ErrInvalidAccount)
		}
		ids = []string{req.CreditAccountID, req.DebitAccountID}
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}

	sort.Strings(ids)
	return ids, nil
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
