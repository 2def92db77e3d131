package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
	portssvc "github.com/psanthosh/simple_bank_system/internal/core/ports/services"
	"github.com/psanthosh/simple_bank_system/internal/dto"
	"github.com/psanthosh/simple_bank_system/internal/middleware"
)

// accountService provides account provisioning and lookup.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount provisions a new account with a zero balance. The account
// number is assigned by storage; the name must be unique.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      name,
		Balance:   decimal.Zero,
		Version:   1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		logger.Warn("failed to create account", slog.String("name", name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("account created",
		slog.String("account_id", account.AccountID),
		slog.Int64("account_number", account.AccountNumber),
	)
	return &account, nil
}

// GetAccountByID retrieves a single account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByNumber retrieves a single account by its system-assigned number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find account number %d: %w", accountNumber, err)
	}
	return account, nil
}

// ListAccounts returns a page of accounts ordered by name.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}
