package fantasy

import (
	"fmt"
	"strings"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

const SquadSize = 11

// slotPositions fixes the position each slot index must hold:
// 0 GK, 1-4 DEF, 5-8 MID, 9-10 FWD.
var slotPositions = [SquadSize]player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionDefender,
	player.PositionDefender,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionMidfielder,
	player.PositionMidfielder,
	player.PositionMidfielder,
	player.PositionForward,
	player.PositionForward,
}

// Quota is the number of slots per position.
var Quota = map[player.Position]int{
	player.PositionGoalkeeper: 1,
	player.PositionDefender:   4,
	player.PositionMidfielder: 4,
	player.PositionForward:    2,
}

func SlotPosition(index int) (player.Position, bool) {
	if index < 0 || index >= SquadSize {
		return "", false
	}
	return slotPositions[index], true
}

// Candidate holds one player id per slot index; an empty id is an unfilled slot.
type Candidate [SquadSize]string

func CandidateFromIDs(ids []string) (Candidate, error) {
	var c Candidate
	if len(ids) > SquadSize {
		return c, fmt.Errorf("%w: expected at most %d player ids, got %d", ErrIncompleteSquad, SquadSize, len(ids))
	}
	for i, id := range ids {
		c[i] = strings.TrimSpace(id)
	}
	return c, nil
}

func (c Candidate) PlayerIDs() []string {
	out := make([]string, 0, SquadSize)
	for _, id := range c {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Slot is one squad entry and the points already credited for it.
type Slot struct {
	Index        int
	PlayerID     string
	PointsEarned int
}

// Squad is one submitted selection in a user's squad history.
type Squad struct {
	ID          string
	UserID      string
	CreatedAt   time.Time
	LockedUntil time.Time
	TotalPoints int
	Slots       []Slot
}

func NewSquad(id, userID string, candidate Candidate, now time.Time, rules Rules) Squad {
	slots := make([]Slot, 0, SquadSize)
	for idx, playerID := range candidate {
		slots = append(slots, Slot{Index: idx, PlayerID: playerID})
	}

	return Squad{
		ID:          id,
		UserID:      userID,
		CreatedAt:   now,
		LockedUntil: now.Add(rules.LockWindow),
		Slots:       slots,
	}
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("squad created_at is required")
	}
	if !s.LockedUntil.After(s.CreatedAt) {
		return fmt.Errorf("squad locked_until must be after created_at")
	}
	if len(s.Slots) != SquadSize {
		return fmt.Errorf("%w: expected %d slots, got %d", ErrIncompleteSquad, SquadSize, len(s.Slots))
	}

	return nil
}

func (s Squad) PlayerIDs() []string {
	out := make([]string, 0, len(s.Slots))
	for _, slot := range s.Slots {
		out = append(out, slot.PlayerID)
	}
	return out
}

func (s Squad) Lock() Lock {
	return Lock{SquadID: s.ID, LockedUntil: s.LockedUntil}
}

// Lock is the submission lock carried by a user's latest squad.
type Lock struct {
	SquadID     string
	LockedUntil time.Time
}

func (l Lock) ActiveAt(now time.Time) bool {
	return now.Before(l.LockedUntil)
}

func (l Lock) RemainingAt(now time.Time) time.Duration {
	if !l.ActiveAt(now) {
		return 0
	}
	return l.LockedUntil.Sub(now)
}

// SlotCredit sets the credited points of one slot, keyed by player.
type SlotCredit struct {
	PlayerID     string
	PointsEarned int
}

// Credit is one user's ledger update, applied atomically by storage.
type Credit struct {
	SquadID string
	UserID  string
	Slots   []SlotCredit
	Delta   int
}
