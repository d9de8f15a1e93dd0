package roundservice

import "errors"

// Service-level errors. Validation failures surface as rounddomain errors and
// storage failures as rounddb.ErrLedgerUnavailable.
var (
	// ErrInvalidScorecard indicates an uploaded scorecard could not be parsed.
	ErrInvalidScorecard = errors.New("invalid scorecard")
)
