package roundservice

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/frolf-league/app/eventbus"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ------------------------
// Fake Ledger
// ------------------------

// FakeLedger provides a programmable stub for the rounddb.Ledger interface.
// Without overrides it behaves like an in-memory ledger.
type FakeLedger struct {
	trace []string
	store *rounddb.MemoryLedger

	ReadAllFunc func(ctx context.Context) ([]rounddomain.RoundRecord, error)
	UpsertFunc  func(ctx context.Context, record rounddomain.RoundRecord) error
}

// NewFakeLedger initializes a FakeLedger seeded with records.
func NewFakeLedger(records ...rounddomain.RoundRecord) *FakeLedger {
	return &FakeLedger{
		trace: []string{},
		store: rounddb.NewMemoryLedger(records...),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeLedger) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLedger) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLedger) ReadAll(ctx context.Context) ([]rounddomain.RoundRecord, error) {
	f.record("ReadAll")
	if f.ReadAllFunc != nil {
		return f.ReadAllFunc(ctx)
	}
	return f.store.ReadAll(ctx)
}

func (f *FakeLedger) Upsert(ctx context.Context, record rounddomain.RoundRecord) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, record)
	}
	return f.store.Upsert(ctx, record)
}

var _ rounddb.Ledger = (*FakeLedger)(nil)

// ------------------------
// Fake Publisher
// ------------------------

// FakePublisher records published messages.
type FakePublisher struct {
	mu        sync.Mutex
	Published map[string][]*message.Message

	PublishFunc func(topic string, messages ...*message.Message) error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{Published: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishFunc != nil {
		if err := f.PublishFunc(topic, messages...); err != nil {
			return err
		}
	}
	f.Published[topic] = append(f.Published[topic], messages...)
	return nil
}

func (f *FakePublisher) Count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Published[topic])
}

var _ eventbus.Publisher = (*FakePublisher)(nil)
