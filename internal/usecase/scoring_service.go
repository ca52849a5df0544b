package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/match"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/scoring"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type scoringPass interface {
	ApplyScoringPass(ctx context.Context) (LedgerReport, error)
}

// MatchResultReport is everything recording one result produced.
type MatchResultReport struct {
	Match   match.Match
	Outcome scoring.Outcome
	Ledger  LedgerReport
}

type ScoringService struct {
	matchRepo   match.Repository
	playerRepo  player.Repository
	scoringRepo scoring.Repository
	ledger      scoringPass
	logger      *logging.Logger
}

func NewScoringService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	scoringRepo scoring.Repository,
	ledger scoringPass,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		scoringRepo: scoringRepo,
		ledger:      ledger,
		logger:      logger,
	}
}

// RecordMatchResult scores a match, applies the player deltas and completes
// the match in one storage step, then runs a ledger pass.
func (s *ScoringService) RecordMatchResult(ctx context.Context, result scoring.MatchResult) (MatchResultReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordMatchResult", attribute.String("match.id", result.MatchID))
	defer span.End()

	if err := result.Validate(); err != nil {
		return MatchResultReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, result.MatchID)
	if err != nil {
		recordSpanError(span, err)
		return MatchResultReport{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchResultReport{}, fmt.Errorf("%w: match %s", ErrNotFound, result.MatchID)
	}
	if m.IsCompleted() {
		return MatchResultReport{}, fmt.Errorf("%w: match %s already completed", ErrConflict, m.ID)
	}

	homeRoster, err := s.playerRepo.ListByTeam(ctx, m.HomeTeam)
	if err != nil {
		return MatchResultReport{}, fmt.Errorf("list home roster: %w", err)
	}
	awayRoster, err := s.playerRepo.ListByTeam(ctx, m.AwayTeam)
	if err != nil {
		return MatchResultReport{}, fmt.Errorf("list away roster: %w", err)
	}

	outcome := scoring.Calculate(result, homeRoster, awayRoster)
	for _, issue := range outcome.Issues {
		s.logger.WarnContext(ctx, "match event skipped",
			"match_id", m.ID,
			"side", string(issue.Side),
			"event", string(issue.Event),
			"player_id", issue.PlayerID,
		)
	}

	err = s.scoringRepo.ApplyResult(ctx, scoring.Application{
		MatchID:   m.ID,
		HomeScore: result.HomeScore,
		AwayScore: result.AwayScore,
		Deltas:    outcome.Deltas,
	})
	if err != nil {
		if errors.Is(err, scoring.ErrMatchCompleted) {
			return MatchResultReport{}, fmt.Errorf("%w: match %s already completed", ErrConflict, m.ID)
		}
		recordSpanError(span, err)
		return MatchResultReport{}, fmt.Errorf("apply match result: %w", err)
	}

	home, away := result.HomeScore, result.AwayScore
	m.Status = match.StatusCompleted
	m.HomeScore = &home
	m.AwayScore = &away

	s.logger.InfoContext(ctx, "match result recorded",
		"match_id", m.ID,
		"home_team", m.HomeTeam,
		"away_team", m.AwayTeam,
		"home_score", home,
		"away_score", away,
		"players_scored", len(outcome.Deltas),
		"issues", len(outcome.Issues),
	)

	report := MatchResultReport{Match: m, Outcome: outcome}
	ledger, err := s.ledger.ApplyScoringPass(ctx)
	if err != nil {
		// Player points are already committed; the next pass picks them up.
		s.logger.ErrorContext(ctx, "ledger pass after match result failed", "match_id", m.ID, "error", err)
		return report, fmt.Errorf("apply scoring pass: %w", err)
	}
	report.Ledger = ledger
	if ledgerErr := ledger.Err(); ledgerErr != nil {
		s.logger.WarnContext(ctx, "ledger pass finished with failures", "match_id", m.ID, "error", ledgerErr)
	}

	return report, nil
}
