package postgres

import (
	"context"
	"fmt"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/scoring"
	qb "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

const applyPlayerDeltasQuery = `
UPDATE players AS p
SET points = p.points + d.delta
FROM unnest($1::text[], $2::int[]) AS d(player_id, delta)
WHERE p.id = d.player_id`

// ApplyResult adds every player delta and completes the match in one
// transaction. The match row is locked so a result is applied at most once.
func (r *ScoringRepository) ApplyResult(ctx context.Context, app scoring.Application) error {
	return withTx(ctx, r.db, "match result", func(tx *sqlx.Tx) error {
		query, args, err := qb.Select("status").From("matches").
			Where(qb.Eq("id", app.MatchID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock match query: %w", err)
		}
		var status string
		if err := tx.GetContext(ctx, &status, query, args...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("match %s not found", app.MatchID)
			}
			return fmt.Errorf("lock match row: %w", err)
		}
		if match.Status(status) == match.StatusCompleted {
			return scoring.ErrMatchCompleted
		}

		if len(app.Deltas) > 0 {
			ids, deltas := splitDeltas(app.Deltas)
			if err := execExpectRows(ctx, tx, int64(len(ids)), applyPlayerDeltasQuery, pq.Array(ids), pq.Array(deltas)); err != nil {
				return fmt.Errorf("apply player deltas: %w", err)
			}
		}

		updateQuery, updateArgs, err := qb.Update("matches").
			Set("status", string(match.StatusCompleted)).
			Set("home_score", app.HomeScore).
			Set("away_score", app.AwayScore).
			Where(qb.Eq("id", app.MatchID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build complete match query: %w", err)
		}
		if err := execExpectRows(ctx, tx, 1, updateQuery, updateArgs...); err != nil {
			return fmt.Errorf("complete match %s: %w", app.MatchID, err)
		}
		return nil
	})
}

// splitDeltas sums deltas per player so each id appears once in the batch.
func splitDeltas(deltas []scoring.PlayerDelta) ([]string, []int64) {
	index := make(map[string]int, len(deltas))
	ids := make([]string, 0, len(deltas))
	sums := make([]int64, 0, len(deltas))
	for _, d := range deltas {
		if i, ok := index[d.PlayerID]; ok {
			sums[i] += int64(d.Delta)
			continue
		}
		index[d.PlayerID] = len(ids)
		ids = append(ids, d.PlayerID)
		sums = append(sums, int64(d.Delta))
	}
	return ids, sums
}
