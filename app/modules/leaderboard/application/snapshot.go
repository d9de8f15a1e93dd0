package leaderboardservice

import (
	"context"
	"sync"
	"time"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"golang.org/x/sync/singleflight"
)

// snapshotCache holds the last ledger read for ttl. Concurrent misses share
// one ReadAll. A zero ttl disables caching.
type snapshotCache struct {
	ledger rounddb.Ledger
	ttl    time.Duration
	now    func() time.Time

	mu         sync.Mutex
	records    []rounddomain.RoundRecord
	loadedAt   time.Time
	valid      bool
	generation uint64

	group singleflight.Group
}

func newSnapshotCache(ledger rounddb.Ledger, ttl time.Duration) *snapshotCache {
	return &snapshotCache{ledger: ledger, ttl: ttl, now: time.Now}
}

// get returns the cached records, reading the ledger on a miss. The returned
// slice is shared and must not be modified.
func (c *snapshotCache) get(ctx context.Context) ([]rounddomain.RoundRecord, bool, error) {
	c.mu.Lock()
	if c.valid && c.now().Sub(c.loadedAt) < c.ttl {
		records := c.records
		c.mu.Unlock()
		return records, true, nil
	}
	gen := c.generation
	c.mu.Unlock()

	v, err, _ := c.group.Do("ledger", func() (any, error) {
		records, err := c.ledger.ReadAll(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// An invalidation during the read means records may already be stale.
		if c.generation == gen && c.ttl > 0 {
			c.records = records
			c.loadedAt = c.now()
			c.valid = true
		}
		c.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]rounddomain.RoundRecord), false, nil
}

func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.records = nil
	c.generation++
}
