package leaderboarddomain

import "github.com/shopspring/decimal"

// PointsTable converts a weekly rank into points.
type PointsTable map[int]decimal.Decimal

// PointsFor returns the points for rank, or floor when the table has no entry.
func (t PointsTable) PointsFor(rank int, floor decimal.Decimal) decimal.Decimal {
	if p, ok := t[rank]; ok {
		return p
	}
	return floor
}
