package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const DefaultRankingLimit = 10

type LeaderboardEntry struct {
	Rank     int
	UserID   string
	Username string
	Points   int
}

type PlayerPopularity struct {
	Player           player.Player
	SelectionCount   int
	SelectionPercent float64
}

// SquadPoints is one entry of a user's points history.
type SquadPoints struct {
	SquadID      string
	CreatedAt    time.Time
	TotalPoints  int
	EarnedPoints int
}

type TeamShare struct {
	Team    string
	Players int
}

type PositionPoints struct {
	Position player.Position
	Total    int
	Average  float64
}

type UserAnalytics struct {
	PointsHistory  []SquadPoints
	Composition    []TeamShare
	PositionPoints []PositionPoints
}

type Dashboard struct {
	Leaderboard []LeaderboardEntry
	TopScorers  []player.Player
	Popular     []PlayerPopularity
	Upcoming    []match.Match
}

type upcomingLister interface {
	ListUpcoming(ctx context.Context, limit int) ([]match.Match, error)
}

type StatsService struct {
	userRepo   user.Repository
	playerRepo player.Repository
	squadRepo  fantasy.Repository
	matches    upcomingLister
	workers    int
	logger     *logging.Logger
}

func NewStatsService(
	userRepo user.Repository,
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	matches upcomingLister,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsService{
		userRepo:   userRepo,
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		matches:    matches,
		workers:    4,
		logger:     logger,
	}
}

// Leaderboard ranks users by points. Equal points share a rank.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	slices.SortStableFunc(users, func(a, b user.User) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return strings.Compare(a.Username, b.Username)
	})

	users = truncate(users, normalizeLimit(limit))
	out := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		rank := i + 1
		if i > 0 && u.Points == users[i-1].Points {
			rank = out[i-1].Rank
		}
		out = append(out, LeaderboardEntry{Rank: rank, UserID: u.ID, Username: u.Username, Points: u.Points})
	}
	return out, nil
}

// TopScorers lists players with the most lifetime points.
func (s *StatsService) TopScorers(ctx context.Context, limit int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TopScorers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	SortPlayersByPoints(players)
	return truncate(players, normalizeLimit(limit)), nil
}

// PopularPlayers counts, per player, the users that picked them in any stored
// squad. The percentage is relative to users that have submitted a squad.
func (s *StatsService) PopularPlayers(ctx context.Context, limit int) ([]PlayerPopularity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PopularPlayers")
	defer span.End()

	squads, err := s.squadRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list squads: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	users := make(map[string]struct{})
	pickedBy := make(map[string]map[string]struct{})
	for _, squad := range squads {
		users[squad.UserID] = struct{}{}
		for _, slot := range squad.Slots {
			if pickedBy[slot.PlayerID] == nil {
				pickedBy[slot.PlayerID] = make(map[string]struct{})
			}
			pickedBy[slot.PlayerID][squad.UserID] = struct{}{}
		}
	}

	out := make([]PlayerPopularity, 0, len(players))
	for _, p := range players {
		item := PlayerPopularity{Player: p, SelectionCount: len(pickedBy[p.ID])}
		if len(users) > 0 {
			item.SelectionPercent = float64(item.SelectionCount) * 100 / float64(len(users))
		}
		out = append(out, item)
	}
	slices.SortStableFunc(out, func(a, b PlayerPopularity) int {
		if c := cmp.Compare(b.SelectionCount, a.SelectionCount); c != 0 {
			return c
		}
		return strings.Compare(a.Player.ID, b.Player.ID)
	})

	return truncate(out, normalizeLimit(limit)), nil
}

// UserAnalytics summarizes a user's squads.
func (s *StatsService) UserAnalytics(ctx context.Context, userID string) (UserAnalytics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.UserAnalytics")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserAnalytics{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	squads, err := s.squadRepo.ListByUser(ctx, userID)
	if err != nil {
		return UserAnalytics{}, fmt.Errorf("list squads by user: %w", err)
	}
	var out UserAnalytics
	if len(squads) == 0 {
		return out, nil
	}

	var ids []string
	for _, squad := range squads {
		ids = append(ids, squad.PlayerIDs()...)
	}
	players, err := s.playerRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return UserAnalytics{}, fmt.Errorf("get players by ids: %w", err)
	}
	byID := player.IndexByID(players)

	// Squads arrive newest first; history reads oldest first.
	for i := len(squads) - 1; i >= 0; i-- {
		squad := squads[i]
		earned := 0
		for _, slot := range squad.Slots {
			earned += slot.PointsEarned
		}
		out.PointsHistory = append(out.PointsHistory, SquadPoints{
			SquadID:      squad.ID,
			CreatedAt:    squad.CreatedAt,
			TotalPoints:  squad.TotalPoints,
			EarnedPoints: earned,
		})
	}

	teamCounts := make(map[string]int)
	for _, slot := range squads[0].Slots {
		if p, ok := byID[slot.PlayerID]; ok {
			teamCounts[p.Team]++
		}
	}
	for team, n := range teamCounts {
		out.Composition = append(out.Composition, TeamShare{Team: team, Players: n})
	}
	slices.SortFunc(out.Composition, func(a, b TeamShare) int {
		if c := cmp.Compare(b.Players, a.Players); c != 0 {
			return c
		}
		return strings.Compare(a.Team, b.Team)
	})

	totals := make(map[player.Position]int)
	slots := make(map[player.Position]int)
	for _, squad := range squads {
		for _, slot := range squad.Slots {
			p, ok := byID[slot.PlayerID]
			if !ok {
				continue
			}
			totals[p.Position] += slot.PointsEarned
			slots[p.Position]++
		}
	}
	for _, pos := range []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionForward,
	} {
		if slots[pos] == 0 {
			continue
		}
		out.PositionPoints = append(out.PositionPoints, PositionPoints{
			Position: pos,
			Total:    totals[pos],
			Average:  float64(totals[pos]) / float64(slots[pos]),
		})
	}

	return out, nil
}

// Dashboard loads the public overview sections concurrently.
func (s *StatsService) Dashboard(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Dashboard")
	defer span.End()

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return Dashboard{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		out      Dashboard
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	tasks := []struct {
		name string
		run  func() error
	}{
		{"leaderboard", func() error {
			entries, err := s.Leaderboard(ctx, DefaultRankingLimit)
			mu.Lock()
			out.Leaderboard = entries
			mu.Unlock()
			return err
		}},
		{"top_scorers", func() error {
			players, err := s.TopScorers(ctx, DefaultRankingLimit)
			mu.Lock()
			out.TopScorers = players
			mu.Unlock()
			return err
		}},
		{"popular_players", func() error {
			popular, err := s.PopularPlayers(ctx, DefaultRankingLimit)
			mu.Lock()
			out.Popular = popular
			mu.Unlock()
			return err
		}},
		{"upcoming_matches", func() error {
			upcoming, err := s.matches.ListUpcoming(ctx, DefaultUpcomingLimit)
			mu.Lock()
			out.Upcoming = upcoming
			mu.Unlock()
			return err
		}},
	}

	for _, task := range tasks {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := task.run(); err != nil {
				s.logger.WarnContext(ctx, "dashboard section failed", "section", task.name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("load %s: %w", task.name, err)
				}
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return Dashboard{}, fmt.Errorf("submit dashboard task: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		recordSpanError(span, firstErr)
		return Dashboard{}, firstErr
	}
	return out, nil
}

// SortPlayersByPoints orders by points descending, then name.
func SortPlayersByPoints(players []player.Player) {
	slices.SortStableFunc(players, func(a, b player.Player) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRankingLimit
	}
	return limit
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
