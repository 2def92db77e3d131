package services

import (
	"context"

	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	"github.com/psanthosh/simple_bank_system/internal/dto"
)

// TransactionSvcFacade is the transaction engine: it validates a requested
// money movement, serializes access to the affected accounts, appends the
// ledger entry and updates the cached balances atomically.
//
// Failures surface as the typed errors in apperrors; dto.NewTransactionResult
// turns either outcome into a displayable result.
type TransactionSvcFacade interface {
	Execute(ctx context.Context, req dto.TransactionRequest) (*domain.Transaction, error)
}
