package loan

import "errors"

var (
	ErrNotFound   = errors.New("loan not found")
	ErrValidation = errors.New("validation error")
	// ErrConflict means another writer mutated the loan concurrently; the
	// caller should retry the whole operation.
	ErrConflict = errors.New("concurrent loan mutation")
	// ErrInvariant should never fire in correct code; it means the ledger
	// drifted (e.g. installment totals no longer sum to the loan total).
	ErrInvariant = errors.New("ledger invariant violation")
)
