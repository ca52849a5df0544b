package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	qb "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

// Create locks the user row so concurrent submissions serialize, then rejects
// the squad with fantasy.ErrSquadLocked while the latest squad is locked.
func (r *SquadRepository) Create(ctx context.Context, squad fantasy.Squad) error {
	return withTx(ctx, r.db, "squad create", func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := qb.Select("id").From("users").
			Where(qb.Eq("id", squad.UserID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock user query: %w", err)
		}
		var userID string
		if err := tx.GetContext(ctx, &userID, lockQuery, lockArgs...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("user %s not found", squad.UserID)
			}
			return fmt.Errorf("lock user row: %w", err)
		}

		latestQuery, latestArgs, err := qb.Select("locked_until").From("squads").
			Where(qb.Eq("user_id", squad.UserID)).
			OrderBy("created_at DESC", "id DESC").
			Limit(1).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build latest squad lock query: %w", err)
		}
		var lockedUntil time.Time
		err = tx.GetContext(ctx, &lockedUntil, latestQuery, latestArgs...)
		switch {
		case err == nil:
			if (fantasy.Lock{LockedUntil: lockedUntil}).ActiveAt(squad.CreatedAt) {
				return fantasy.ErrSquadLocked
			}
		case !isNotFound(err):
			return fmt.Errorf("get latest squad lock: %w", err)
		}

		insertQuery, insertArgs, err := qb.InsertRow("squads", squadTableModel{
			ID:          squad.ID,
			UserID:      squad.UserID,
			CreatedAt:   squad.CreatedAt.UTC(),
			LockedUntil: squad.LockedUntil.UTC(),
			TotalPoints: squad.TotalPoints,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert squad query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert squad: %w", err)
		}

		slots := qb.InsertInto("squad_slots").Columns(slotSelectColumns...)
		for _, slot := range squad.Slots {
			slots.Values(squad.ID, slot.Index, slot.PlayerID, slot.PointsEarned)
		}
		slotsQuery, slotsArgs, err := slots.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert squad slots query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, slotsQuery, slotsArgs...); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: squad references a missing player", fantasy.ErrUnknownPlayer)
			}
			return fmt.Errorf("insert squad slots: %w", err)
		}
		return nil
	})
}

func (r *SquadRepository) LatestByUser(ctx context.Context, userID string) (fantasy.Squad, bool, error) {
	squads, err := r.loadSquads(ctx, "latest squad by user", qb.Select(squadSelectColumns...).From("squads").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		Limit(1))
	if err != nil {
		return fantasy.Squad{}, false, err
	}
	if len(squads) == 0 {
		return fantasy.Squad{}, false, nil
	}
	return squads[0], true, nil
}

func (r *SquadRepository) ListByUser(ctx context.Context, userID string) ([]fantasy.Squad, error) {
	return r.loadSquads(ctx, "list squads by user", qb.Select(squadSelectColumns...).From("squads").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC"))
}

func (r *SquadRepository) ListLatest(ctx context.Context) ([]fantasy.Squad, error) {
	return r.loadSquads(ctx, "list latest squads", latestSquadsQuery())
}

func (r *SquadRepository) List(ctx context.Context) ([]fantasy.Squad, error) {
	return r.loadSquads(ctx, "list squads", qb.Select(squadSelectColumns...).From("squads").
		OrderBy("created_at", "id"))
}

// ApplyCredit writes slot points and adds the delta to the squad and user
// totals in one transaction.
func (r *SquadRepository) ApplyCredit(ctx context.Context, credit fantasy.Credit) error {
	return withTx(ctx, r.db, "ledger credit", func(tx *sqlx.Tx) error {
		for _, sc := range credit.Slots {
			query, args, err := qb.Update("squad_slots").
				Set("points_earned", sc.PointsEarned).
				Where(qb.Eq("squad_id", credit.SquadID), qb.Eq("player_id", sc.PlayerID)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build update slot query: %w", err)
			}
			if err := execExpectRows(ctx, tx, 1, query, args...); err != nil {
				return fmt.Errorf("update slot player=%s squad=%s: %w", sc.PlayerID, credit.SquadID, err)
			}
		}

		squadQuery, squadArgs, err := qb.Update("squads").
			SetExpr("total_points", "total_points + ?", credit.Delta).
			Where(qb.Eq("id", credit.SquadID), qb.Eq("user_id", credit.UserID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update squad total query: %w", err)
		}
		if err := execExpectRows(ctx, tx, 1, squadQuery, squadArgs...); err != nil {
			return fmt.Errorf("update squad %s total: %w", credit.SquadID, err)
		}

		userQuery, userArgs, err := qb.Update("users").
			SetExpr("points", "points + ?", credit.Delta).
			Where(qb.Eq("id", credit.UserID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update user points query: %w", err)
		}
		if err := execExpectRows(ctx, tx, 1, userQuery, userArgs...); err != nil {
			return fmt.Errorf("update user %s points: %w", credit.UserID, err)
		}
		return nil
	})
}

func latestSquadsQuery() *qb.SelectBuilder {
	columns := append([]string{"DISTINCT ON (user_id) id"}, squadSelectColumns[1:]...)
	return qb.Select(columns...).From("squads").
		OrderBy("user_id", "created_at DESC", "id DESC")
}

func (r *SquadRepository) loadSquads(ctx context.Context, op string, sel *qb.SelectBuilder) ([]fantasy.Squad, error) {
	query, args, err := sel.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return []fantasy.Squad{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	slotsQuery, slotsArgs, err := qb.Select(slotSelectColumns...).From("squad_slots").
		Where(qb.In("squad_id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s slots query: %w", op, err)
	}

	var slots []squadSlotTableModel
	if err := r.db.SelectContext(ctx, &slots, slotsQuery, slotsArgs...); err != nil {
		return nil, fmt.Errorf("%s slots: %w", op, err)
	}
	return assembleSquads(rows, slots), nil
}
