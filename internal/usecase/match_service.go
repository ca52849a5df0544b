package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	idgen "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/id"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
)

const DefaultUpcomingLimit = 5

type CreateMatchInput struct {
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
}

type MatchService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	loc        *time.Location
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	loc *time.Location,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &MatchService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Create schedules an upcoming match between two clubs that have players.
func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	input.HomeTeam = strings.TrimSpace(input.HomeTeam)
	input.AwayTeam = strings.TrimSpace(input.AwayTeam)

	for _, team := range []string{input.HomeTeam, input.AwayTeam} {
		if team == "" {
			continue
		}
		roster, err := s.playerRepo.ListByTeam(ctx, team)
		if err != nil {
			return match.Match{}, fmt.Errorf("list roster for team=%s: %w", team, err)
		}
		if len(roster) == 0 {
			return match.Match{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	m := match.Match{
		ID:        matchID,
		HomeTeam:  input.HomeTeam,
		AwayTeam:  input.AwayTeam,
		KickoffAt: input.KickoffAt.UTC(),
		Status:    match.StatusUpcoming,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", m.ID,
		"home_team", m.HomeTeam,
		"away_team", m.AwayTeam,
		"kickoff_at", m.KickoffAt,
	)
	return m, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, strings.TrimSpace(matchID))
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return m, nil
}

// List returns every match ordered by kickoff.
func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	sortByKickoff(items)
	return items, nil
}

// ListForDate returns matches kicking off on date that still need a result.
func (s *MatchService) ListForDate(ctx context.Context, date time.Time) ([]match.Match, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(items))
	for _, m := range items {
		if m.IsCompleted() || !m.SameDay(date, s.loc) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// ListUpcoming returns the next scheduled matches from now.
func (s *MatchService) ListUpcoming(ctx context.Context, limit int) ([]match.Match, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]match.Match, 0, limit)
	for _, m := range items {
		if m.Status != match.StatusUpcoming || m.KickoffAt.Before(now) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func sortByKickoff(items []match.Match) {
	slices.SortStableFunc(items, func(a, b match.Match) int {
		if c := a.KickoffAt.Compare(b.KickoffAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
