package rounddomain

import "github.com/shopspring/decimal"

// ResolveNet combines gross, handicap and DNF status into a net score.
// A DNF round always resolves to (0, 0).
func ResolveNet(gross int, handicap decimal.Decimal, dnf bool) (net decimal.Decimal, normalizedGross int) {
	if dnf {
		return decimal.Zero, 0
	}
	return decimal.NewFromInt(int64(gross)).Sub(handicap), gross
}
