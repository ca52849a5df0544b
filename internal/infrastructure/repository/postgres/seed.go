package postgres

import (
	"context"
	"fmt"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/memory"
	qb "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed loads the bundled catalogue when the players table is empty.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return 0, fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	query, args, err := seedPlayersQuery(memory.SeedPlayers())
	if err != nil {
		return 0, err
	}

	var inserted int
	err = withTx(ctx, db, "bootstrap seed", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("seed players: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("seed players rows affected: %w", err)
		}
		inserted = int(n)
		return nil
	})
	return inserted, err
}

func seedPlayersQuery(players []player.Player) (string, []any, error) {
	insert := qb.InsertInto("players").
		Columns(playerSelectColumns...).
		Suffix("ON CONFLICT (id) DO NOTHING")
	for _, p := range players {
		insert.Values(p.ID, p.Name, p.Team, string(p.Position), int64(p.Price), p.Points)
	}

	query, args, err := insert.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build seed players query: %w", err)
	}
	return query, args, nil
}
