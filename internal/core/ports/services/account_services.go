package services

import (
	"context"

	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	"github.com/psanthosh/simple_bank_system/internal/dto"
)

// AccountSvcFacade defines the account provisioning and lookup operations
// exposed to the request layer.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}
