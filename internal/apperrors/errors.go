package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a transaction amount that is not strictly positive.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrInvalidAccount indicates a referenced account that does not exist.
var ErrInvalidAccount = errors.New("invalid account")

// ErrSameAccount indicates a transfer whose source and destination are the same account.
var ErrSameAccount = errors.New("cannot transfer to the same account")

// ErrInsufficientBalance indicates the paying account holds less than the requested amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrConcurrentModification indicates the operation lost a concurrency race: the
// account's version token changed between read and write. The caller may retry the
// whole operation from scratch.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrBusy indicates the operation could not acquire its serialization point within
// the configured wait. The caller may retry.
var ErrBusy = errors.New("account is busy")

// ErrBalanceMismatch indicates the cached balance disagrees with the balance
// recomputed from the ledger. It should never be observed for an account with no
// in-flight transaction.
var ErrBalanceMismatch = errors.New("cached balance does not match ledger")
