package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber int64           `json:"accountNumber"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		Name:          acc.Name,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		res.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// BalanceResponse is returned by the balance endpoint. Balance is recomputed
// from the ledger; CachedBalance is the account's cached field. The two agree
// for any account with no in-flight transaction.
type BalanceResponse struct {
	AccountID     string          `json:"accountID"`
	Balance       decimal.Decimal `json:"balance"`
	CachedBalance decimal.Decimal `json:"cachedBalance"`
}
