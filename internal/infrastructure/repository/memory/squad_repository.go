package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
)

type SquadRepository struct {
	store *Store
}

// Create rejects the squad with fantasy.ErrSquadLocked when the user's latest
// squad is still locked at the new squad's creation time.
func (r *SquadRepository) Create(_ context.Context, squad fantasy.Squad) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.squads[squad.ID]; exists {
		return fmt.Errorf("squad %s already exists", squad.ID)
	}
	if latest, ok := r.latestLocked(squad.UserID); ok && latest.Lock().ActiveAt(squad.CreatedAt) {
		return fantasy.ErrSquadLocked
	}

	r.store.squads[squad.ID] = cloneSquad(squad)
	r.store.userSquads[squad.UserID] = append(r.store.userSquads[squad.UserID], squad.ID)
	return nil
}

func (r *SquadRepository) LatestByUser(_ context.Context, userID string) (fantasy.Squad, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	latest, ok := r.latestLocked(userID)
	if !ok {
		return fantasy.Squad{}, false, nil
	}
	return cloneSquad(latest), true, nil
}

func (r *SquadRepository) ListByUser(_ context.Context, userID string) ([]fantasy.Squad, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := r.store.userSquads[userID]
	out := make([]fantasy.Squad, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, cloneSquad(r.store.squads[ids[i]]))
	}
	return out, nil
}

func (r *SquadRepository) ListLatest(_ context.Context) ([]fantasy.Squad, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fantasy.Squad, 0, len(r.store.userSquads))
	for userID := range r.store.userSquads {
		if latest, ok := r.latestLocked(userID); ok {
			out = append(out, cloneSquad(latest))
		}
	}
	slices.SortFunc(out, func(a, b fantasy.Squad) int { return strings.Compare(a.UserID, b.UserID) })
	return out, nil
}

func (r *SquadRepository) List(_ context.Context) ([]fantasy.Squad, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fantasy.Squad, 0, len(r.store.squads))
	for _, sq := range r.store.squads {
		out = append(out, cloneSquad(sq))
	}
	slices.SortFunc(out, func(a, b fantasy.Squad) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *SquadRepository) ApplyCredit(_ context.Context, credit fantasy.Credit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	squad, ok := r.store.squads[credit.SquadID]
	if !ok {
		return fmt.Errorf("squad %s not found", credit.SquadID)
	}
	u, ok := r.store.users[credit.UserID]
	if !ok {
		return fmt.Errorf("user %s not found", credit.UserID)
	}

	squad = cloneSquad(squad)
	for _, sc := range credit.Slots {
		updated := false
		for i := range squad.Slots {
			if squad.Slots[i].PlayerID == sc.PlayerID {
				squad.Slots[i].PointsEarned = sc.PointsEarned
				updated = true
			}
		}
		if !updated {
			return fmt.Errorf("player %s is not in squad %s", sc.PlayerID, credit.SquadID)
		}
	}
	squad.TotalPoints += credit.Delta
	u.Points += credit.Delta

	r.store.squads[squad.ID] = squad
	r.store.users[u.ID] = u
	return nil
}

// latestLocked expects the caller to hold the store lock.
func (r *SquadRepository) latestLocked(userID string) (fantasy.Squad, bool) {
	ids := r.store.userSquads[userID]
	if len(ids) == 0 {
		return fantasy.Squad{}, false
	}
	sq, ok := r.store.squads[ids[len(ids)-1]]
	return sq, ok
}
