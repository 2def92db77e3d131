package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of money movement a transaction records.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Transfer TransactionType = "TRANSFER"
)

// Transaction is one immutable ledger entry. Entries are append-only: once
// written they are never updated or deleted.
//
// DebitAccountID is the receiving party, CreditAccountID the paying party.
// A deposit has no credit party (external source), a withdrawal no debit party
// (external sink); a transfer carries both in a single entry so the two balance
// movements cannot be observed independently.
type Transaction struct {
	TransactionID   int64           `json:"transactionID"` // monotonic, storage-assigned
	DebitAccountID  *string         `json:"debitAccountID"`
	CreditAccountID *string         `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"` // strictly positive
	Remarks         string          `json:"remarks"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Debits reports whether this entry increases the balance of accountID.
func (t Transaction) Debits(accountID string) bool {
	return t.DebitAccountID != nil && *t.DebitAccountID == accountID
}

// Credits reports whether this entry decreases the balance of accountID.
func (t Transaction) Credits(accountID string) bool {
	return t.CreditAccountID != nil && *t.CreditAccountID == accountID
}
