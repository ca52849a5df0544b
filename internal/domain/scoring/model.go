package scoring

import (
	"fmt"
	"strings"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

// Point values awarded per match event.
const (
	PointsCleanSheetGoalkeeper = 4
	PointsCleanSheetDefender   = 3
	PointsGoal                 = 5
	PointsAssist               = 2
	PointsYellowCard           = -3
	PointsRedCard              = -5
	PointsAppearance           = 2
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

type Event string

const (
	EventCleanSheet Event = "clean_sheet"
	EventGoal       Event = "goal"
	EventAssist     Event = "assist"
	EventYellowCard Event = "yellow_card"
	EventRedCard    Event = "red_card"
	EventAppearance Event = "appearance"
)

// SideEvents lists player ids per event for one team. Each list is a set.
type SideEvents struct {
	Scorers []string
	Assists []string
	Yellows []string
	Reds    []string
}

// MatchResult is the final score and events of one match.
type MatchResult struct {
	MatchID   string
	HomeScore int
	AwayScore int
	Home      SideEvents
	Away      SideEvents
}

func (r MatchResult) Validate() error {
	if strings.TrimSpace(r.MatchID) == "" {
		return fmt.Errorf("match id is required")
	}
	if r.HomeScore < 0 || r.AwayScore < 0 {
		return fmt.Errorf("scores must be non-negative: home=%d away=%d", r.HomeScore, r.AwayScore)
	}
	return nil
}

// PlayerDelta is the point change of one roster player for one match.
type PlayerDelta struct {
	PlayerID string
	Side     Side
	Delta    int
	Events   []Event
}

// DataIntegrityError reports an event naming a player outside the side's roster.
type DataIntegrityError struct {
	Side     Side
	Event    Event
	PlayerID string
}

func (e DataIntegrityError) Error() string {
	return fmt.Sprintf("%s %s references player %s not in %s roster", e.Side, e.Event, e.PlayerID, e.Side)
}

// Outcome holds per-player deltas in roster order, home side first.
type Outcome struct {
	Deltas []PlayerDelta
	Issues []DataIntegrityError
}

// Calculate maps a match result onto point deltas for both rosters.
func Calculate(result MatchResult, homeRoster, awayRoster []player.Player) Outcome {
	var out Outcome
	homeDeltas, homeIssues := calculateSide(SideHome, result.Home, result.AwayScore == 0, homeRoster)
	awayDeltas, awayIssues := calculateSide(SideAway, result.Away, result.HomeScore == 0, awayRoster)

	out.Deltas = append(homeDeltas, awayDeltas...)
	out.Issues = append(homeIssues, awayIssues...)
	return out
}

func calculateSide(side Side, events SideEvents, cleanSheet bool, roster []player.Player) ([]PlayerDelta, []DataIntegrityError) {
	onRoster := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		onRoster[p.ID] = struct{}{}
	}

	var issues []DataIntegrityError
	toSet := func(event Event, ids []string) map[string]struct{} {
		set := make(map[string]struct{}, len(ids))
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if _, ok := onRoster[id]; !ok {
				issues = append(issues, DataIntegrityError{Side: side, Event: event, PlayerID: id})
				continue
			}
			set[id] = struct{}{}
		}
		return set
	}

	scorers := toSet(EventGoal, events.Scorers)
	assists := toSet(EventAssist, events.Assists)
	yellows := toSet(EventYellowCard, events.Yellows)
	reds := toSet(EventRedCard, events.Reds)

	deltas := make([]PlayerDelta, 0, len(roster))
	for _, p := range roster {
		d := PlayerDelta{PlayerID: p.ID, Side: side}

		if cleanSheet {
			switch p.Position {
			case player.PositionGoalkeeper:
				d.add(EventCleanSheet, PointsCleanSheetGoalkeeper)
			case player.PositionDefender:
				d.add(EventCleanSheet, PointsCleanSheetDefender)
			}
		}

		involved := false
		if _, ok := scorers[p.ID]; ok {
			d.add(EventGoal, PointsGoal)
			involved = true
		}
		if _, ok := assists[p.ID]; ok {
			d.add(EventAssist, PointsAssist)
			involved = true
		}
		if _, ok := yellows[p.ID]; ok {
			d.add(EventYellowCard, PointsYellowCard)
			involved = true
		}
		if _, ok := reds[p.ID]; ok {
			d.add(EventRedCard, PointsRedCard)
			involved = true
		}
		if !involved {
			d.add(EventAppearance, PointsAppearance)
		}

		deltas = append(deltas, d)
	}

	return deltas, issues
}

func (d *PlayerDelta) add(event Event, points int) {
	d.Delta += points
	d.Events = append(d.Events, event)
}
