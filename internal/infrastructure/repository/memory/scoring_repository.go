package memory

import (
	"context"
	"fmt"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/scoring"
)

type ScoringRepository struct {
	store *Store
}

func (r *ScoringRepository) ApplyResult(_ context.Context, app scoring.Application) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[app.MatchID]
	if !ok {
		return fmt.Errorf("match %s not found", app.MatchID)
	}
	if m.IsCompleted() {
		return scoring.ErrMatchCompleted
	}
	for _, d := range app.Deltas {
		if _, ok := r.store.players[d.PlayerID]; !ok {
			return fmt.Errorf("player %s not found", d.PlayerID)
		}
	}

	for _, d := range app.Deltas {
		p := r.store.players[d.PlayerID]
		p.Points += d.Delta
		r.store.players[p.ID] = p
	}

	home, away := app.HomeScore, app.AwayScore
	m.Status = match.StatusCompleted
	m.HomeScore = &home
	m.AwayScore = &away
	r.store.matches[m.ID] = m
	return nil
}
