package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	return r.filter(func(player.Player) bool { return true }), nil
}

func (r *PlayerRepository) ListByPosition(_ context.Context, position player.Position) ([]player.Player, error) {
	return r.filter(func(p player.Player) bool { return p.Position == position }), nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, team string) ([]player.Player, error) {
	team = strings.TrimSpace(team)
	return r.filter(func(p player.Player) bool { return strings.EqualFold(p.Team, team) }), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.store.players[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// filter returns matching players ordered by id.
func (r *PlayerRepository) filter(keep func(player.Player) bool) []player.Player {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, p := range r.store.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b player.Player) int { return strings.Compare(a.ID, b.ID) })
	return out
}
