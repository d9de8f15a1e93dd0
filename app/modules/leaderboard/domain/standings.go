package leaderboarddomain

import (
	"cmp"
	"slices"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
)

// avgNetPlaces is the display precision of the season average net score.
const avgNetPlaces = 2

// SeasonStanding is a player's aggregated season line.
type SeasonStanding struct {
	Position     int             `json:"position"`
	Player       string          `json:"player"`
	TotalPoints  decimal.Decimal `json:"total_points"`
	AvgNet       decimal.Decimal `json:"avg_net"`
	RoundsPlayed int             `json:"rounds_played"`
	DNFs         int             `json:"dnfs"`
	WeeksWon     int             `json:"weeks_won"`
	Pars         int             `json:"pars"`
	Birdies      int             `json:"birdies"`
	Eagles       int             `json:"eagles"`
}

type playerTally struct {
	standing SeasonStanding
	netSum   decimal.Decimal
}

// BuildStandings ranks every week and sums the points per player.
//
// AvgNet covers a player's non-DNF, non-baseline rounds only and is defined
// as 0 when there are none. The result is ordered by TotalPoints descending,
// then AvgNet ascending, then player name, so the same input always yields
// the same output. Players sharing points and average net share a Position.
func BuildStandings(all []rounddomain.RoundRecord, table PointsTable, floor decimal.Decimal) []SeasonStanding {
	tallies := make(map[string]*playerTally)
	tally := func(player string) *playerTally {
		t, ok := tallies[player]
		if !ok {
			t = &playerTally{standing: SeasonStanding{
				Player:      player,
				TotalPoints: decimal.Zero,
				AvgNet:      decimal.Zero,
			}, netSum: decimal.Zero}
			tallies[player] = t
		}
		return t
	}

	for _, r := range all {
		t := tally(r.Player)
		if r.IsBaseline() {
			continue
		}
		t.standing.Pars += r.Pars
		t.standing.Birdies += r.Birdies
		t.standing.Eagles += r.Eagles
		if r.DNF {
			t.standing.DNFs++
			continue
		}
		t.standing.RoundsPlayed++
		t.netSum = t.netSum.Add(r.Net)
	}

	byWeek, weeks := GroupByWeek(all)
	for _, w := range weeks {
		for _, res := range RankWeek(byWeek[w], table, floor) {
			t := tally(res.Player)
			t.standing.TotalPoints = t.standing.TotalPoints.Add(res.Points)
			if res.Rank == 1 {
				t.standing.WeeksWon++
			}
		}
	}

	standings := make([]SeasonStanding, 0, len(tallies))
	for _, t := range tallies {
		s := t.standing
		if s.RoundsPlayed > 0 {
			s.AvgNet = t.netSum.DivRound(decimal.NewFromInt(int64(s.RoundsPlayed)), avgNetPlaces)
		}
		standings = append(standings, s)
	}

	slices.SortFunc(standings, compareStandings)

	for i := range standings {
		if i > 0 && sameStanding(standings[i], standings[i-1]) {
			standings[i].Position = standings[i-1].Position
			continue
		}
		standings[i].Position = i + 1
	}
	return standings
}

func compareStandings(a, b SeasonStanding) int {
	if c := b.TotalPoints.Cmp(a.TotalPoints); c != 0 {
		return c
	}
	if c := a.AvgNet.Cmp(b.AvgNet); c != 0 {
		return c
	}
	return cmp.Compare(a.Player, b.Player)
}

func sameStanding(a, b SeasonStanding) bool {
	return a.TotalPoints.Equal(b.TotalPoints) && a.AvgNet.Equal(b.AvgNet)
}
