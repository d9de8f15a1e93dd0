package rounddb

import (
	"context"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/uptrace/bun"
)

// Impl implements Ledger on postgres using bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a postgres-backed ledger.
func NewRepository(db bun.IDB) *Impl {
	return &Impl{db: db}
}

// ReadAll returns every row of league_rounds.
func (r *Impl) ReadAll(ctx context.Context) ([]rounddomain.RoundRecord, error) {
	var rows []LeagueRound
	err := r.db.NewSelect().
		Model(&rows).
		Order("week ASC", "player ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rounddb.ReadAll: %w: %w", ErrLedgerUnavailable, err)
	}

	records := make([]rounddomain.RoundRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toDomain())
	}
	return records, nil
}

// Upsert writes record, replacing any row with the same (week, player).
func (r *Impl) Upsert(ctx context.Context, record rounddomain.RoundRecord) error {
	_, err := r.db.NewInsert().
		Model(toModel(record)).
		ExcludeColumn("id", "created_at").
		On("CONFLICT (week, player) DO UPDATE").
		Set("pars = EXCLUDED.pars").
		Set("birdies = EXCLUDED.birdies").
		Set("eagles = EXCLUDED.eagles").
		Set("gross = EXCLUDED.gross").
		Set("handicap = EXCLUDED.handicap").
		Set("net = EXCLUDED.net").
		Set("dnf = EXCLUDED.dnf").
		Set("pin = EXCLUDED.pin").
		Set("submitted_at = EXCLUDED.submitted_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rounddb.Upsert week %d player %q: %w: %w", record.Week, record.Player, ErrLedgerUnavailable, err)
	}
	return nil
}
