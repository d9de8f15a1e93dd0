package rounddomain

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// HandicapPolicy decides what happens to a computed handicap below zero.
type HandicapPolicy string

const (
	PolicyAllowPlus        HandicapPolicy = "allowPlus"
	PolicyClampNonNegative HandicapPolicy = "clampNonNegative"
)

// DefaultWindowSize is the number of trailing qualifying rounds considered.
const DefaultWindowSize = 4

// HandicapConfig parameterizes ComputeHandicap.
type HandicapConfig struct {
	BaselinePar   int
	WindowSize    int
	ExcludedWeeks map[int]struct{}
	Policy        HandicapPolicy
}

func (c HandicapConfig) window() int {
	if c.WindowSize < 1 {
		return DefaultWindowSize
	}
	return c.WindowSize
}

func (c HandicapConfig) excluded(week int) bool {
	_, ok := c.ExcludedWeeks[week]
	return ok
}

// ComputeHandicap derives a player's handicap for targetWeek from their prior
// qualifying rounds.
//
// The most recent WindowSize rounds before targetWeek (skipping baseline,
// excluded and DNF weeks) are averaged after dropping the single worst gross
// when the window is full. With no qualifying rounds the week-0 baseline
// handicap is returned. The result is always rounded to one decimal place.
func ComputeHandicap(history []RoundRecord, targetWeek int, cfg HandicapConfig) decimal.Decimal {
	selected := make([]RoundRecord, 0, len(history))
	for _, r := range history {
		if r.IsBaseline() || r.DNF || r.Week >= targetWeek || cfg.excluded(r.Week) {
			continue
		}
		selected = append(selected, r)
	}

	slices.SortStableFunc(selected, func(a, b RoundRecord) int {
		return cmp.Compare(b.Week, a.Week)
	})
	window := cfg.window()
	if len(selected) > window {
		selected = selected[:window]
	}

	var handicap decimal.Decimal
	switch {
	case len(selected) == 0:
		for _, r := range history {
			if r.IsBaseline() {
				handicap = r.Handicap
				break
			}
		}
	default:
		grosses := make([]int, len(selected))
		for i, r := range selected {
			grosses[i] = r.Gross
		}
		if len(grosses) >= window && len(grosses) > 1 {
			worst := slices.Index(grosses, slices.Max(grosses))
			grosses = slices.Delete(grosses, worst, worst+1)
		}
		handicap = meanGross(grosses).Sub(decimal.NewFromInt(int64(cfg.BaselinePar)))
	}

	return applyPolicy(handicap.Round(1), cfg.Policy)
}

func meanGross(grosses []int) decimal.Decimal {
	if len(grosses) == 0 {
		return decimal.Zero
	}
	var sum int64
	for _, g := range grosses {
		sum += int64(g)
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(grosses))))
}

func applyPolicy(h decimal.Decimal, policy HandicapPolicy) decimal.Decimal {
	if policy == PolicyClampNonNegative && h.IsNegative() {
		return decimal.Zero.Round(1)
	}
	return h
}
