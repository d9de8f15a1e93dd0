package rounddb

import (
	"time"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// LeagueRound is the postgres row for one round record.
type LeagueRound struct {
	bun.BaseModel `bun:"table:league_rounds,alias:lr"`

	ID          int64           `bun:"id,pk,autoincrement"`
	Week        int             `bun:"week,notnull,unique:league_rounds_week_player"`
	Player      string          `bun:"player,notnull,unique:league_rounds_week_player"`
	Pars        int             `bun:"pars,notnull"`
	Birdies     int             `bun:"birdies,notnull"`
	Eagles      int             `bun:"eagles,notnull"`
	Gross       int             `bun:"gross,notnull"`
	Handicap    decimal.Decimal `bun:"handicap,type:numeric,notnull"`
	Net         decimal.Decimal `bun:"net,type:numeric,notnull"`
	DNF         bool            `bun:"dnf,notnull"`
	PIN         string          `bun:"pin,notnull"`
	SubmittedAt time.Time       `bun:"submitted_at,nullzero"`
	CreatedAt   time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}

func toModel(r rounddomain.RoundRecord) *LeagueRound {
	return &LeagueRound{
		Week:        r.Week,
		Player:      r.Player,
		Pars:        r.Pars,
		Birdies:     r.Birdies,
		Eagles:      r.Eagles,
		Gross:       r.Gross,
		Handicap:    r.Handicap,
		Net:         r.Net,
		DNF:         r.DNF,
		PIN:         r.PIN,
		SubmittedAt: r.SubmittedAt,
		UpdatedAt:   time.Now().UTC(),
	}
}

func (m *LeagueRound) toDomain() rounddomain.RoundRecord {
	return rounddomain.RoundRecord{
		Week:        m.Week,
		Player:      m.Player,
		Pars:        m.Pars,
		Birdies:     m.Birdies,
		Eagles:      m.Eagles,
		Gross:       m.Gross,
		Handicap:    m.Handicap,
		Net:         m.Net,
		DNF:         m.DNF,
		PIN:         m.PIN,
		SubmittedAt: m.SubmittedAt,
	}
}
