package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
	portssvc "github.com/psanthosh/simple_bank_system/internal/core/ports/services"
	"github.com/psanthosh/simple_bank_system/internal/middleware"
)

// ledgerService is the read path over the ledger. The ledger is the source of
// truth: a balance is the sum of debit entries minus the sum of credit entries
// for the account. The cached balance on the account row exists so reads do
// not pay for a full scan, and VerifyBalance checks the two never drift apart.
type ledgerService struct {
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepository, transactionRepo portsrepo.TransactionRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// BalanceOf recomputes the account balance from its ledger entries.
func (s *ledgerService) BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	entries, err := s.transactionRepo.FindTransactionsByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load ledger entries for account %s: %w", accountID, err)
	}

	balance := decimal.Zero
	for _, entry := range entries {
		if entry.Debits(accountID) {
			balance = balance.Add(entry.Amount)
		}
		if entry.Credits(accountID) {
			balance = balance.Sub(entry.Amount)
		}
	}
	return balance, nil
}

// HistoryOf returns the account's ledger entries, newest first.
func (s *ledgerService) HistoryOf(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return s.transactionRepo.FindTransactionsByAccountID(ctx, accountID)
}

// VerifyBalance recomputes the balance from the ledger and compares it with
// the cached value on the account row. A mismatch means the cache invariant
// was broken and returns apperrors.ErrBalanceMismatch.
func (s *ledgerService) VerifyBalance(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	computed, err := s.BalanceOf(ctx, accountID)
	if err != nil {
		return err
	}

	if !computed.Equal(account.Balance) {
		middleware.GetLoggerFromCtx(ctx).Error("cached balance diverged from ledger",
			slog.String("account_id", accountID),
			slog.String("cached", account.Balance.String()),
			slog.String("computed", computed.String()),
		)
		return fmt.Errorf("%w: cached %s, ledger %s", apperrors.ErrBalanceMismatch, account.Balance.String(), computed.String())
	}
	return nil
}
