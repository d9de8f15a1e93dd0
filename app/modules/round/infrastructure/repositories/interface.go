package rounddb

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
)

// Ledger is the persistent store of round records keyed by (week, player).
//
// Error semantics:
//   - ErrLedgerUnavailable: the backing store could not be read or written
//   - ErrCorruptRow: a stored row could not be typed into a RoundRecord
type Ledger interface {
	// ReadAll returns every stored record, baseline rows included,
	// ordered by week then player.
	ReadAll(ctx context.Context) ([]rounddomain.RoundRecord, error)
	// Upsert inserts record or replaces the one stored under the same key.
	Upsert(ctx context.Context, record rounddomain.RoundRecord) error
}
