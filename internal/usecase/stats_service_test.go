package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/memory"
)

type stubUpcoming struct {
	items []match.Match
	err   error
}

func (s stubUpcoming) ListUpcoming(_ context.Context, limit int) ([]match.Match, error) {
	return s.items, s.err
}

func seedUsersWithPoints(t *testing.T, store *memory.Store, points map[string]int) {
	t.Helper()

	for name, pts := range points {
		err := store.Users().Create(t.Context(), user.User{
			ID:           "id-" + name,
			Username:     name,
			PasswordHash: user.HashPassword("pw"),
			Points:       pts,
			CreatedAt:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("create user %s: %v", name, err)
		}
	}
}

func TestStatsService_Leaderboard(t *testing.T) {
	store := memory.NewStore()
	seedUsersWithPoints(t, store, map[string]int{"amy": 30, "ben": 50, "cat": 30, "dan": 10})
	service := NewStatsService(store.Users(), store.Players(), store.Squads(), stubUpcoming{}, testLogger)

	got, err := service.Leaderboard(t.Context(), 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}

	want := []LeaderboardEntry{
		{Rank: 1, UserID: "id-ben", Username: "ben", Points: 50},
		{Rank: 2, UserID: "id-amy", Username: "amy", Points: 30},
		{Rank: 2, UserID: "id-cat", Username: "cat", Points: 30},
		{Rank: 4, UserID: "id-dan", Username: "dan", Points: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected entries: %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected entry %d: got=%+v want=%+v", i, got[i], want[i])
		}
	}

	top, err := service.Leaderboard(t.Context(), 1)
	if err != nil {
		t.Fatalf("leaderboard limit: %v", err)
	}
	if len(top) != 1 || top[0].Username != "ben" {
		t.Fatalf("unexpected limited leaderboard: %+v", top)
	}
}

func TestStatsService_TopScorers(t *testing.T) {
	store := memory.NewStore()
	store.PutPlayers(
		player.Player{ID: "p1", Name: "Zed", Team: "A", Position: player.PositionForward, Points: 9},
		player.Player{ID: "p2", Name: "Abe", Team: "A", Position: player.PositionForward, Points: 9},
		player.Player{ID: "p3", Name: "Kit", Team: "B", Position: player.PositionDefender, Points: 12},
	)
	service := NewStatsService(store.Users(), store.Players(), store.Squads(), stubUpcoming{}, testLogger)

	got, err := service.TopScorers(t.Context(), 2)
	if err != nil {
		t.Fatalf("top scorers: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p3" || got[1].ID != "p2" {
		t.Fatalf("unexpected top scorers: %+v", got)
	}
}

func TestStatsService_PopularPlayersAndAnalytics(t *testing.T) {
	store := memory.NewSeededStore()
	submitSeedSquad(t, store, "user-1")
	mustCreateUser(store, "user-2")

	alt := validSeedCandidate()
	alt[0] = "bfc-gk-01"
	squadService := NewSquadService(store.Players(), store.Squads(), fantasy.DefaultRules(), staticIDGenerator{id: "squad-user-2"}, testLogger)
	if _, err := squadService.SubmitSquad(t.Context(), "user-2", alt, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("submit second squad: %v", err)
	}

	setPlayerPoints(t, store, "mbsg-def-01", 8)
	ledger := NewLedgerService(store.Players(), store.Squads(), LedgerOptions{}, testLogger)
	if _, err := ledger.ApplyScoringPass(t.Context()); err != nil {
		t.Fatalf("apply scoring pass: %v", err)
	}

	service := NewStatsService(store.Users(), store.Players(), store.Squads(), stubUpcoming{}, testLogger)
	popular, err := service.PopularPlayers(t.Context(), 50)
	if err != nil {
		t.Fatalf("popular players: %v", err)
	}
	byID := make(map[string]PlayerPopularity, len(popular))
	for _, item := range popular {
		byID[item.Player.ID] = item
	}
	if got := byID["mbsg-def-01"]; got.SelectionCount != 2 || got.SelectionPercent != 100 {
		t.Fatalf("unexpected popularity for shared player: %+v", got)
	}
	if got := byID["mbsg-gk-01"]; got.SelectionCount != 1 || got.SelectionPercent != 50 {
		t.Fatalf("unexpected popularity for single pick: %+v", got)
	}
	if popular[0].SelectionCount != 2 {
		t.Fatalf("popular list must start with most picked, got %+v", popular[0])
	}

	analytics, err := service.UserAnalytics(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("user analytics: %v", err)
	}
	if len(analytics.PointsHistory) != 1 || analytics.PointsHistory[0].TotalPoints != 8 {
		t.Fatalf("unexpected history: %+v", analytics.PointsHistory)
	}
	if len(analytics.Composition) == 0 || analytics.Composition[0].Players < analytics.Composition[len(analytics.Composition)-1].Players {
		t.Fatalf("composition must be ordered by player count: %+v", analytics.Composition)
	}
	var defPoints PositionPoints
	for _, pp := range analytics.PositionPoints {
		if pp.Position == player.PositionDefender {
			defPoints = pp
		}
	}
	if defPoints.Total != 8 || defPoints.Average != 2 {
		t.Fatalf("unexpected defender points: %+v", defPoints)
	}

	empty, err := service.UserAnalytics(t.Context(), "nobody")
	if err != nil {
		t.Fatalf("analytics for user without squads: %v", err)
	}
	if len(empty.PointsHistory) != 0 {
		t.Fatalf("expected empty analytics, got %+v", empty)
	}
}

func TestStatsService_Dashboard(t *testing.T) {
	store := memory.NewSeededStore()
	seedUsersWithPoints(t, store, map[string]int{"amy": 3})
	upcoming := []match.Match{{ID: "m-1", HomeTeam: "FC Goa", AwayTeam: "Odisha FC", KickoffAt: time.Now().Add(time.Hour)}}

	service := NewStatsService(store.Users(), store.Players(), store.Squads(), stubUpcoming{items: upcoming}, testLogger)
	got, err := service.Dashboard(t.Context())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(got.Leaderboard) != 1 || len(got.TopScorers) != DefaultRankingLimit || len(got.Popular) != DefaultRankingLimit || len(got.Upcoming) != 1 {
		t.Fatalf("unexpected dashboard: leaderboard=%d scorers=%d popular=%d upcoming=%d",
			len(got.Leaderboard), len(got.TopScorers), len(got.Popular), len(got.Upcoming))
	}

	failing := NewStatsService(store.Users(), store.Players(), store.Squads(), stubUpcoming{err: errors.New("boom")}, testLogger)
	if _, err := failing.Dashboard(t.Context()); err == nil {
		t.Fatalf("expected dashboard error when a section fails")
	}
}
