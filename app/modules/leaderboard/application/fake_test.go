package leaderboardservice

import (
	"context"
	"sync"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
)

// ------------------------
// Fake Ledger
// ------------------------

// FakeLedger serves a fixed set of records and counts reads.
type FakeLedger struct {
	mu      sync.Mutex
	records []rounddomain.RoundRecord
	reads   int

	ReadAllFunc func(ctx context.Context) ([]rounddomain.RoundRecord, error)
}

func NewFakeLedger(records ...rounddomain.RoundRecord) *FakeLedger {
	return &FakeLedger{records: records}
}

func (f *FakeLedger) ReadAll(ctx context.Context) ([]rounddomain.RoundRecord, error) {
	f.mu.Lock()
	f.reads++
	fn := f.ReadAllFunc
	records := append([]rounddomain.RoundRecord(nil), f.records...)
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return records, nil
}

func (f *FakeLedger) Upsert(ctx context.Context, record rounddomain.RoundRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].Key() == record.Key() {
			f.records[i] = record
			return nil
		}
	}
	f.records = append(f.records, record)
	return nil
}

// Reads returns the number of ReadAll calls.
func (f *FakeLedger) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

var _ rounddb.Ledger = (*FakeLedger)(nil)
