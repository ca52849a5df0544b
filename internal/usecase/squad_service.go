package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	idgen "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/id"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type SquadService struct {
	playerRepo player.Repository
	squadRepo  fantasy.Repository
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSquadService(
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SquadService) Rules() fantasy.Rules {
	return s.rules
}

// Validate checks a candidate against the current player catalogue without
// persisting anything.
func (s *SquadService) Validate(ctx context.Context, candidate fantasy.Candidate) (fantasy.Validation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Validate")
	defer span.End()

	players, err := s.loadCandidatePlayers(ctx, candidate)
	if err != nil {
		recordSpanError(span, err)
		return fantasy.Validation{}, err
	}

	return fantasy.Validate(candidate, players, s.rules), nil
}

// CurrentLock returns the lock carried by the user's latest squad.
func (s *SquadService) CurrentLock(ctx context.Context, userID string, now time.Time) (fantasy.Lock, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.CurrentLock")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Lock{}, false, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	latest, exists, err := s.squadRepo.LatestByUser(ctx, userID)
	if err != nil {
		recordSpanError(span, err)
		return fantasy.Lock{}, false, fmt.Errorf("get latest squad: %w", err)
	}
	if !exists {
		return fantasy.Lock{}, false, nil
	}

	lock := latest.Lock()
	return lock, lock.ActiveAt(now), nil
}

// SubmitSquad stores a new squad for the user when no lock is active and the
// candidate passes validation.
func (s *SquadService) SubmitSquad(ctx context.Context, userID string, candidate fantasy.Candidate, now time.Time) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.SubmitSquad", attribute.String("user.id", userID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	now = now.UTC()

	lock, active, err := s.CurrentLock(ctx, userID, now)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if active {
		return fantasy.Squad{}, &fantasy.LockActiveError{
			LockedUntil: lock.LockedUntil,
			Remaining:   lock.RemainingAt(now),
		}
	}

	validation, err := s.Validate(ctx, candidate)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if err := validation.Err(); err != nil {
		return fantasy.Squad{}, err
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		recordSpanError(span, err)
		return fantasy.Squad{}, fmt.Errorf("generate squad id: %w", err)
	}

	squad := fantasy.NewSquad(squadID, userID, candidate, now, s.rules)
	if err := squad.ValidateBasic(); err != nil {
		return fantasy.Squad{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.squadRepo.Create(ctx, squad); err != nil {
		if errors.Is(err, fantasy.ErrSquadLocked) {
			// Another submission won the race.
			if lock, active, lockErr := s.CurrentLock(ctx, userID, now); lockErr == nil && active {
				return fantasy.Squad{}, &fantasy.LockActiveError{
					LockedUntil: lock.LockedUntil,
					Remaining:   lock.RemainingAt(now),
				}
			}
			return fantasy.Squad{}, err
		}
		recordSpanError(span, err)
		return fantasy.Squad{}, fmt.Errorf("create squad: %w", err)
	}

	s.logger.InfoContext(ctx, "squad submitted",
		"user_id", userID,
		"squad_id", squad.ID,
		"total_cost", validation.TotalCost.String(),
		"locked_until", squad.LockedUntil,
	)

	return squad, nil
}

// CurrentSquad returns the user's most recently created squad.
func (s *SquadService) CurrentSquad(ctx context.Context, userID string) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.CurrentSquad")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	squad, exists, err := s.squadRepo.LatestByUser(ctx, userID)
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("get latest squad: %w", err)
	}
	if !exists {
		return fantasy.Squad{}, fmt.Errorf("%w: user %s has no squad", ErrNotFound, userID)
	}
	return squad, nil
}

// History lists the user's squads newest first.
func (s *SquadService) History(ctx context.Context, userID string) ([]fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.History")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	squads, err := s.squadRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list squads by user: %w", err)
	}
	return squads, nil
}

// Suggest proposes a squad from the full player catalogue within budget.
// A non-positive budget falls back to the configured squad budget.
func (s *SquadService) Suggest(ctx context.Context, budget player.Money) (fantasy.Suggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Suggest")
	defer span.End()

	if budget <= 0 {
		budget = s.rules.Budget
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fantasy.Suggestion{}, fmt.Errorf("list players: %w", err)
	}

	suggestion, err := fantasy.Suggest(players, budget)
	if err != nil {
		if errors.Is(err, fantasy.ErrInsufficientPlayers) {
			return fantasy.Suggestion{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return fantasy.Suggestion{}, err
	}
	if !suggestion.WithinBudget {
		s.logger.WarnContext(ctx, "no suggested squad fits the budget",
			"budget", budget.String(),
			"total_cost", suggestion.TotalCost.String(),
		)
	}

	return suggestion, nil
}

func (s *SquadService) loadCandidatePlayers(ctx context.Context, candidate fantasy.Candidate) (map[string]player.Player, error) {
	ids := uniqueIDs(candidate.PlayerIDs())
	if len(ids) == 0 {
		return map[string]player.Player{}, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	return player.IndexByID(players), nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
