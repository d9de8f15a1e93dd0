package testutils

import (
	"fmt"
	"time"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// TestDataGenerator builds league records for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator with an optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateBaselines returns count week-0 rows with distinct player names.
func (g *TestDataGenerator) GenerateBaselines(count int) []rounddomain.RoundRecord {
	records := make([]rounddomain.RoundRecord, 0, count)
	for i := 0; i < count; i++ {
		player := fmt.Sprintf("%s-%d", g.faker.FirstName(), i)
		handicap := decimal.NewFromInt(int64(g.faker.IntRange(0, 30)))
		records = append(records, rounddomain.NewBaseline(player, handicap, g.faker.DigitN(4)))
	}
	return records
}

// GenerateRound returns a played or DNF round for player in week.
func (g *TestDataGenerator) GenerateRound(player string, week int) rounddomain.RoundRecord {
	handicap := decimal.New(int64(g.faker.IntRange(0, 300)), -1)
	if g.faker.IntRange(1, 10) == 1 {
		net, gross := rounddomain.ResolveNet(0, handicap, true)
		return rounddomain.RoundRecord{Week: week, Player: player, Gross: gross, Handicap: handicap, Net: net, DNF: true}
	}
	net, gross := rounddomain.ResolveNet(g.faker.IntRange(30, 70), handicap, false)
	return rounddomain.RoundRecord{
		Week:     week,
		Player:   player,
		Gross:    gross,
		Handicap: handicap,
		Net:      net,
		Pars:     g.faker.IntRange(0, 9),
		Birdies:  g.faker.IntRange(0, 3),
		Eagles:   g.faker.IntRange(0, 1),
	}
}

// GenerateSeason returns baselines plus one round per player per week.
func (g *TestDataGenerator) GenerateSeason(players, weeks int) []rounddomain.RoundRecord {
	baselines := g.GenerateBaselines(players)
	records := append([]rounddomain.RoundRecord{}, baselines...)
	for week := 1; week <= weeks; week++ {
		for _, b := range baselines {
			records = append(records, g.GenerateRound(b.Player, week))
		}
	}
	return records
}
