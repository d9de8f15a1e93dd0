package leaderboarddomain

import (
	"cmp"
	"slices"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
)

// WeeklyResult is one player's ranked outcome for a week.
// Rank is 0 for DNF rounds, which never occupy a rank slot.
type WeeklyResult struct {
	Week     int             `json:"week"`
	Player   string          `json:"player"`
	Gross    int             `json:"gross"`
	Handicap decimal.Decimal `json:"handicap"`
	Net      decimal.Decimal `json:"net"`
	DNF      bool            `json:"dnf"`
	Rank     int             `json:"rank"`
	Points   decimal.Decimal `json:"points"`
}

// RankWeek ranks a week's records by net score ascending using competition
// ("min") ranking and awards points from table, or floor for ranks past the
// table. DNF rounds are appended after the ranked field with zero points.
// Baseline rows are ignored.
func RankWeek(records []rounddomain.RoundRecord, table PointsTable, floor decimal.Decimal) []WeeklyResult {
	ranked := make([]rounddomain.RoundRecord, 0, len(records))
	dnfs := make([]rounddomain.RoundRecord, 0)
	for _, r := range records {
		switch {
		case r.IsBaseline():
			continue
		case r.DNF:
			dnfs = append(dnfs, r)
		default:
			ranked = append(ranked, r)
		}
	}

	// Sort by net ascending with deterministic tie-break on player.
	slices.SortFunc(ranked, func(a, b rounddomain.RoundRecord) int {
		if c := a.Net.Cmp(b.Net); c != 0 {
			return c
		}
		return cmp.Compare(a.Player, b.Player)
	})
	slices.SortFunc(dnfs, func(a, b rounddomain.RoundRecord) int {
		return cmp.Compare(a.Player, b.Player)
	})

	results := make([]WeeklyResult, 0, len(ranked)+len(dnfs))
	rank := 0
	for i, r := range ranked {
		if i == 0 || !r.Net.Equal(ranked[i-1].Net) {
			rank = i + 1
		}
		results = append(results, WeeklyResult{
			Week:     r.Week,
			Player:   r.Player,
			Gross:    r.Gross,
			Handicap: r.Handicap,
			Net:      r.Net,
			Rank:     rank,
			Points:   table.PointsFor(rank, floor),
		})
	}
	for _, r := range dnfs {
		results = append(results, WeeklyResult{
			Week:     r.Week,
			Player:   r.Player,
			Handicap: r.Handicap,
			Net:      decimal.Zero,
			DNF:      true,
			Points:   decimal.Zero,
		})
	}
	return results
}

// RankAndScoreWeek returns the points each player earned in a week.
func RankAndScoreWeek(records []rounddomain.RoundRecord, table PointsTable, floor decimal.Decimal) map[string]decimal.Decimal {
	results := RankWeek(records, table, floor)
	points := make(map[string]decimal.Decimal, len(results))
	for _, res := range results {
		points[res.Player] = res.Points
	}
	return points
}

// GroupByWeek splits records into weeks, dropping baseline rows.
// The returned weeks are sorted ascending.
func GroupByWeek(records []rounddomain.RoundRecord) (map[int][]rounddomain.RoundRecord, []int) {
	byWeek := make(map[int][]rounddomain.RoundRecord)
	for _, r := range records {
		if r.IsBaseline() {
			continue
		}
		byWeek[r.Week] = append(byWeek[r.Week], r)
	}
	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	slices.Sort(weeks)
	return byWeek, weeks
}
