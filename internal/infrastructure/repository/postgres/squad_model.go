package postgres

import (
	"cmp"
	"slices"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
)

type squadTableModel struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	LockedUntil time.Time `db:"locked_until"`
	TotalPoints int       `db:"total_points"`
}

type squadSlotTableModel struct {
	SquadID      string `db:"squad_id"`
	SlotIndex    int    `db:"slot_index"`
	PlayerID     string `db:"player_id"`
	PointsEarned int    `db:"points_earned"`
}

var (
	squadSelectColumns = []string{"id", "user_id", "created_at", "locked_until", "total_points"}
	slotSelectColumns  = []string{"squad_id", "slot_index", "player_id", "points_earned"}
)

// assembleSquads attaches slots to their squads, keeping the squad order.
func assembleSquads(rows []squadTableModel, slots []squadSlotTableModel) []fantasy.Squad {
	bySquad := make(map[string][]fantasy.Slot, len(rows))
	for _, s := range slots {
		bySquad[s.SquadID] = append(bySquad[s.SquadID], fantasy.Slot{
			Index:        s.SlotIndex,
			PlayerID:     s.PlayerID,
			PointsEarned: s.PointsEarned,
		})
	}

	out := make([]fantasy.Squad, 0, len(rows))
	for _, row := range rows {
		squadSlots := bySquad[row.ID]
		slices.SortFunc(squadSlots, func(a, b fantasy.Slot) int {
			return cmp.Compare(a.Index, b.Index)
		})
		out = append(out, fantasy.Squad{
			ID:          row.ID,
			UserID:      row.UserID,
			CreatedAt:   row.CreatedAt.UTC(),
			LockedUntil: row.LockedUntil.UTC(),
			TotalPoints: row.TotalPoints,
			Slots:       squadSlots,
		})
	}
	return out
}
