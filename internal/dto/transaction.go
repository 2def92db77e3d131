package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
)

// TransactionRequest is the engine's input: an operation kind, a positive
// amount, zero/one/two account identifiers as appropriate and optional remarks.
type TransactionRequest struct {
	Type            domain.TransactionType
	Amount          decimal.Decimal
	DebitAccountID  string // receiving account (deposit, transfer)
	CreditAccountID string // paying account (withdraw, transfer)
	Remarks         string
}

// DepositRequest is the HTTP body for a deposit.
type DepositRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
}

// WithdrawRequest is the HTTP body for a withdrawal.
type WithdrawRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
}

// TransferRequest is the HTTP body for a transfer. The destination is
// addressed by its account number, the way a caller sees it.
type TransferRequest struct {
	FromAccountID   string          `json:"fromAccountID" binding:"required"`
	ToAccountNumber int64           `json:"toAccountNumber" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Remarks         string          `json:"remarks"`
}

// TransactionResult is what the caller sees: a success flag and a message
// suitable for direct display. No storage identifiers or internals leak into
// the message.
type TransactionResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID *int64 `json:"transactionID,omitempty"`
}

// NewTransactionResult converts an engine outcome into a displayable result.
func NewTransactionResult(req TransactionRequest, txn *domain.Transaction, err error) TransactionResult {
	if err == nil {
		res := TransactionResult{Success: true, Message: successMessage(req)}
		if txn != nil {
			res.TransactionID = &txn.TransactionID
		}
		return res
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return TransactionResult{Message: "Amount must be greater than zero"}
	case errors.Is(err, apperrors.ErrInvalidAccount), errors.Is(err, apperrors.ErrNotFound):
		return TransactionResult{Message: "Invalid account"}
	case errors.Is(err, apperrors.ErrSameAccount):
		return TransactionResult{Message: "Cannot transfer to the same account"}
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		return TransactionResult{Message: "Insufficient balance"}
	case errors.Is(err, apperrors.ErrConcurrentModification):
		return TransactionResult{Message: "Concurrent transaction detected, please try again"}
	case errors.Is(err, apperrors.ErrBusy):
		return TransactionResult{Message: "Account is busy, please try again"}
	default:
		return TransactionResult{Message: "Transaction failed, please try again"}
	}
}

func successMessage(req TransactionRequest) string {
	switch req.Type {
	case domain.Deposit:
		return fmt.Sprintf("%s deposited successfully", req.Amount.String())
	case domain.Withdraw:
		return fmt.Sprintf("%s withdrawn successfully", req.Amount.String())
	case domain.Transfer:
		return fmt.Sprintf("%s transferred successfully", req.Amount.String())
	default:
		return "Transaction success"
	}
}

// TransactionResponse mirrors domain.Transaction for history listings.
type TransactionResponse struct {
	TransactionID   int64           `json:"transactionID"`
	DebitAccountID  *string         `json:"debitAccountID"`
	CreditAccountID *string         `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	Remarks         string          `json:"remarks"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		DebitAccountID:  t.DebitAccountID,
		CreditAccountID: t.CreditAccountID,
		Amount:          t.Amount,
		Remarks:         t.Remarks,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(ts))
	for i := range ts {
		res[i] = ToTransactionResponse(&ts[i])
	}
	return res
}

// ListTransactionsResponse wraps an account's transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
