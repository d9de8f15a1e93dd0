package rounddb

import "errors"

// Sentinel errors for the ledger layer.
// These are infrastructure conditions; validation failures live in rounddomain.
var (
	// ErrLedgerUnavailable indicates the backing store could not be reached,
	// read or written. Callers see it wrapped around the driver error.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrCorruptRow indicates a stored row could not be parsed.
	ErrCorruptRow = errors.New("corrupt ledger row")
)
