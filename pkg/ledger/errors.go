package ledger

import "errors"

// ErrInvalidAmount is returned when a submitted amount is missing or not
// strictly positive.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrInvalidDestination is returned when a withdrawal destination is missing
// any of sort code, account number, or account holder name.
var ErrInvalidDestination = errors.New("destination sort code, account number, and account holder name are required")

// ErrInsufficientFunds is returned when the overdraft policy is enabled and a
// withdrawal exceeds the current approved balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountInactive is returned when submitting against a deactivated
// account.
var ErrAccountInactive = errors.New("account is inactive")
