package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/core/domain"
)

// LedgerSvcFacade is the read path over the ledger. BalanceOf is the
// authoritative balance definition; the cached field on Account is an
// optimization that VerifyBalance cross-checks against it.
type LedgerSvcFacade interface {
	BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error)
	HistoryOf(ctx context.Context, accountID string) ([]domain.Transaction, error)
	VerifyBalance(ctx context.Context, accountID string) error
}
