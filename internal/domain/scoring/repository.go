package scoring

import (
	"context"
	"errors"
)

var ErrMatchCompleted = errors.New("match already completed")

// Application is everything one match result changes in storage.
type Application struct {
	MatchID   string
	HomeScore int
	AwayScore int
	Deltas    []PlayerDelta
}

type Repository interface {
	// ApplyResult adds the deltas to player points and marks the match
	// completed as one unit. It returns ErrMatchCompleted when the match
	// already has a result.
	ApplyResult(ctx context.Context, app Application) error
}
