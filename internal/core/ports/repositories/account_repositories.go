package repositories

import (
	"context"

	"github.com/psanthosh/simple_bank_system/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account and assigns its AccountNumber.
	// The assigned number is written back to the passed account.
	// Returns apperrors.ErrDuplicate if the name is already taken.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// FindAccountByID returns apperrors.ErrNotFound if no such account exists.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber looks an account up by its system-assigned number.
	FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error)

	// ListAccounts returns accounts ordered by name.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}
