package rounddomain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BaselineWeek is the reserved registration week. Its row only carries the
// player's starting handicap and never takes part in ranking or aggregation.
const BaselineWeek = 0

// RoundRecord is one submitted (or baseline) round for a player.
type RoundRecord struct {
	Week        int             `json:"week"`
	Player      string          `json:"player"`
	Pars        int             `json:"pars"`
	Birdies     int             `json:"birdies"`
	Eagles      int             `json:"eagles"`
	Gross       int             `json:"gross"`
	Handicap    decimal.Decimal `json:"handicap"`
	Net         decimal.Decimal `json:"net"`
	DNF         bool            `json:"dnf"`
	PIN         string          `json:"-"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// Key identifies a record in the ledger.
type Key struct {
	Week   int
	Player string
}

// Key returns the composite (week, player) key of the record.
func (r RoundRecord) Key() Key {
	return Key{Week: r.Week, Player: r.Player}
}

// IsBaseline reports whether r is the week-0 registration row.
func (r RoundRecord) IsBaseline() bool {
	return r.Week == BaselineWeek
}

// Qualifies reports whether r counts toward ranking and net averages.
func (r RoundRecord) Qualifies() bool {
	return !r.IsBaseline() && !r.DNF
}

// NormalizePlayer canonicalizes a player identifier.
func NormalizePlayer(player string) string {
	return strings.TrimSpace(player)
}

// PlayerHistory returns the records belonging to player, ordered by week.
func PlayerHistory(records []RoundRecord, player string) []RoundRecord {
	player = NormalizePlayer(player)
	out := make([]RoundRecord, 0, 16)
	for _, r := range records {
		if r.Player == player {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b RoundRecord) int {
		return cmp.Compare(a.Week, b.Week)
	})
	return out
}

// Baseline returns the player's week-0 row, if any.
func Baseline(records []RoundRecord, player string) (RoundRecord, bool) {
	player = NormalizePlayer(player)
	for _, r := range records {
		if r.Player == player && r.IsBaseline() {
			return r, true
		}
	}
	return RoundRecord{}, false
}

// Find returns the record stored under key, if any.
func Find(records []RoundRecord, key Key) (RoundRecord, bool) {
	for _, r := range records {
		if r.Key() == key {
			return r, true
		}
	}
	return RoundRecord{}, false
}
