package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a single bank account.
//
// Balance is a cache: it must always equal the sum of ledger entries that debit
// this account minus the sum of entries that credit it. Only the transaction
// engine mutates it, in lockstep with entry creation, inside one atomic unit.
//
// Version is the concurrency token guarding the cached balance. Every balance
// write bumps it and is conditioned on the value read under the same lock.
type Account struct {
	AccountID     string          `json:"accountID"`
	AccountNumber int64           `json:"accountNumber"` // system-assigned, unique, immutable
	Name          string          `json:"name"`          // unique display name
	Balance       decimal.Decimal `json:"balance"`
	Version       int64           `json:"-"`
	AuditFields
}
