package storage

import "errors"

// ErrTransactionNotFound is returned when a transaction id does not exist.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrAccountNotFound is returned when an account id does not exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when creating an account whose id is taken.
var ErrAccountExists = errors.New("account already exists")

// ErrAlreadyDecided is returned when a status update targets a transaction
// that is no longer pending. Approved and rejected are terminal states.
var ErrAlreadyDecided = errors.New("transaction already decided")

// ErrStoreUnavailable marks a transient infrastructure failure of the backing
// store, as opposed to a domain violation. Callers may retry with backoff.
var ErrStoreUnavailable = errors.New("store unavailable")
