package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating league_rounds table...")

		_, err := db.NewCreateTable().Model((*rounddb.LeagueRound)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create league_rounds table: %w", err)
		}

		_, err = db.NewCreateIndex().
			Model((*rounddb.LeagueRound)(nil)).
			Index("idx_league_rounds_player").
			Column("player").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create league_rounds player index: %w", err)
		}

		fmt.Println("league_rounds table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back league_rounds table...")

		_, err := db.NewDropTable().Model((*rounddb.LeagueRound)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop league_rounds table: %w", err)
		}

		fmt.Println("league_rounds table dropped successfully!")
		return nil
	})
}
