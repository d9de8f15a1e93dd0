package rounddb

import (
	"cmp"
	"context"
	"slices"
	"sync"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
)

// MemoryLedger keeps records in a map. Used by tests and dry runs.
type MemoryLedger struct {
	mu      sync.RWMutex
	records map[rounddomain.Key]rounddomain.RoundRecord
}

// NewMemoryLedger returns an empty in-memory ledger seeded with records.
func NewMemoryLedger(records ...rounddomain.RoundRecord) *MemoryLedger {
	l := &MemoryLedger{records: make(map[rounddomain.Key]rounddomain.RoundRecord, len(records))}
	for _, r := range records {
		l.records[r.Key()] = r
	}
	return l
}

func (l *MemoryLedger) ReadAll(ctx context.Context) ([]rounddomain.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]rounddomain.RoundRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sortRecords(out)
	return out, nil
}

func (l *MemoryLedger) Upsert(ctx context.Context, record rounddomain.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[record.Key()] = record
	return nil
}

func sortRecords(records []rounddomain.RoundRecord) {
	slices.SortFunc(records, func(a, b rounddomain.RoundRecord) int {
		if c := cmp.Compare(a.Week, b.Week); c != 0 {
			return c
		}
		return cmp.Compare(a.Player, b.Player)
	})
}
